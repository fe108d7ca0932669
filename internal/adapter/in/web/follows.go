package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/model"
	"yatube/internal/service"
)

func (h *Handler) profileFollow(w http.ResponseWriter, r *http.Request) {
	h.toggleFollow(w, r, h.follows.Follow)
}

func (h *Handler) profileUnfollow(w http.ResponseWriter, r *http.Request) {
	h.toggleFollow(w, r, h.follows.Unfollow)
}

type followFunc = func(ctx context.Context, id model.Identity, username string) error

// toggleFollow lands on the profile whatever the outcome; following yourself
// changes nothing.
func (h *Handler) toggleFollow(w http.ResponseWriter, r *http.Request, apply followFunc) {
	id, ok := h.requireLogin(w, r)
	if !ok {
		return
	}
	username := mux.Vars(r)["username"]

	err := apply(r.Context(), id, username)
	if err != nil && !errors.Is(err, service.ErrSelfFollow) {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, profileURL(username))
}
