package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.Index(r.Context(), pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, "posts/index.html", IndexContext{Page: toPageView(page)})
}

func (h *Handler) groupPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feeds.GroupFeed(r.Context(), mux.Vars(r)["slug"], pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, "posts/group_list.html", GroupContext{
		Group: toGroupView(feed.Group),
		Page:  toPageView(feed.Page),
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feeds.ProfileFeed(r.Context(), identityFrom(r.Context()), mux.Vars(r)["username"], pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, "posts/profile.html", ProfileContext{
		Author:     toAuthorView(feed.Author),
		PostsCount: feed.PostsCount,
		Following:  feed.Following,
		Page:       toPageView(feed.Page),
	})
}

func (h *Handler) followIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.FollowFeed(r.Context(), identityFrom(r.Context()), pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, "posts/follow.html", IndexContext{Page: toPageView(page)})
}
