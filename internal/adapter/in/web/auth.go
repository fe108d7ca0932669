package web

import (
	"errors"
	"net/http"

	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/logger"
)

const (
	sessionCookie = "session"

	msgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	if r.Method == http.MethodGet {
		render(w, r, http.StatusOK, "users/login.html", AuthFormContext{
			Form: FormView{Fields: map[string]string{"username": ""}},
			Next: next,
		})
		return
	}

	if err := parseForm(w, r); err != nil {
		h.fail(w, r, err)
		return
	}
	if v := r.PostFormValue("next"); v != "" {
		next = v
	}
	username := r.PostFormValue("username")

	token, id, err := h.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		render(w, r, http.StatusOK, "users/login.html", AuthFormContext{
			Form: FormView{
				Fields: map[string]string{"username": username},
				Errors: map[string][]string{"__all__": {msgBadCredentials}},
			},
			Next: next,
		})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.setSession(w, token)
	logger.FromContext(r.Context()).Info("logged in", "user_id", id.UserID)
	redirect(w, r, safeNext(next))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, http.StatusOK, "users/signup.html", AuthFormContext{
			Form: FormView{Fields: map[string]string{"username": ""}},
		})
		return
	}

	if err := parseForm(w, r); err != nil {
		h.fail(w, r, err)
		return
	}
	form := service.SignUpForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.auth.SignUp(r.Context(), form)
	var fe *service.FormError
	if errors.As(err, &fe) {
		render(w, r, http.StatusOK, "users/signup.html", AuthFormContext{
			Form: FormView{Fields: map[string]string{"username": form.Username}, Errors: fe.Fields},
		})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.auth.IssueToken(model.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.setSession(w, token)
	redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	render(w, r, http.StatusOK, "users/logged_out.html", struct{}{})
}

func (h *Handler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.sessionTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
