package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"yatube/internal/service"
	"yatube/pkg/logger"
	"yatube/pkg/pagination"
)

const (
	loginPath   = "/auth/login/"
	mediaPrefix = "/media/"
)

// Page is the rendered form of every view: the template that would draw it
// and the context handed to that template.
type Page struct {
	Template string `json:"template"`
	Context  any    `json:"context"`
}

func render(w http.ResponseWriter, r *http.Request, status int, template string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Page{Template: template, Context: data}); err != nil {
		logger.FromContext(r.Context()).Error("encode page", "error", err)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}

// loginURL keeps slashes of next readable: /auth/login/?next=/create/.
func loginURL(next string) string {
	return loginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(postID int64) string {
	return "/posts/" + strconv.FormatInt(postID, 10) + "/"
}

func mediaURL(name string) string {
	if name == "" {
		return ""
	}
	return mediaPrefix + name
}

// safeNext accepts only local absolute paths as a login continuation.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func pageNumber(r *http.Request) int {
	return pagination.ParseNumber(r.URL.Query().Get("page"))
}

// fail maps errors that every view treats the same way. Views handle
// ErrForbidden and form errors themselves since the response depends on the
// resource.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		redirect(w, r, loginURL(r.URL.Path))
	case errors.Is(err, service.ErrNotFound):
		h.notFound(w, r)
	case errors.Is(err, service.ErrForbidden):
		render(w, r, http.StatusForbidden, "core/403.html", errorContext{Path: r.URL.Path})
	case errors.Is(err, service.ErrInvalidRequest):
		render(w, r, http.StatusBadRequest, "core/400.html", errorContext{Path: r.URL.Path})
	default:
		log.Error("request failed", "error", err)
		render(w, r, http.StatusInternalServerError, "core/500.html", errorContext{Path: r.URL.Path})
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, "core/404.html", errorContext{Path: r.URL.Path})
}
