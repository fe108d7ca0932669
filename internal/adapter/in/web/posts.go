package web

import (
	"errors"
	"net/http"

	"yatube/internal/model"
	"yatube/internal/service"
)

func (h *Handler) postDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	detail, err := h.posts.GetPostDetail(r.Context(), postID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, "posts/post_detail.html", toDetailContext(detail))
}

func (h *Handler) postCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireLogin(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, http.StatusOK, service.PostForm{}, nil, 0)
		return
	}

	form, err := postForm(w, r)
	var fe *service.FormError
	if errors.As(err, &fe) {
		h.renderPostForm(w, r, http.StatusOK, form, fe, 0)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_, err = h.posts.CreatePost(r.Context(), id, form)
	switch {
	case errors.As(err, &fe):
		h.renderPostForm(w, r, http.StatusOK, form, fe, 0)
	case err != nil:
		h.fail(w, r, err)
	default:
		redirect(w, r, profileURL(id.Username))
	}
}

func (h *Handler) postEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireLogin(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		post, err := h.posts.GetPostForEdit(r.Context(), id, postID)
		if errors.Is(err, service.ErrForbidden) {
			redirect(w, r, postURL(postID))
			return
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.renderPostForm(w, r, http.StatusOK, service.PostForm{Text: post.Text, GroupID: post.GroupID}, nil, postID)
		return
	}

	form, err := postForm(w, r)
	var fe *service.FormError
	if errors.As(err, &fe) {
		h.renderPostForm(w, r, http.StatusOK, form, fe, postID)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_, err = h.posts.EditPost(r.Context(), id, postID, form)
	switch {
	case errors.Is(err, service.ErrForbidden):
		redirect(w, r, postURL(postID))
	case errors.As(err, &fe):
		h.renderPostForm(w, r, http.StatusOK, form, fe, postID)
	case err != nil:
		h.fail(w, r, err)
	default:
		redirect(w, r, postURL(postID))
	}
}

func (h *Handler) postDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireLogin(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	err := h.posts.DeletePost(r.Context(), id, postID)
	switch {
	case errors.Is(err, service.ErrForbidden):
		redirect(w, r, postURL(postID))
	case err != nil:
		h.fail(w, r, err)
	default:
		redirect(w, r, profileURL(id.Username))
	}
}

// addComment always lands on the post detail. An empty comment is dropped
// without a write, like a GET.
func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireLogin(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := h.posts.GetPostDetail(r.Context(), postID); err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, postURL(postID))
		return
	}

	if err := parseForm(w, r); err != nil {
		h.fail(w, r, err)
		return
	}

	_, err := h.comments.CreateComment(r.Context(), id, postID, service.CommentForm{Text: r.PostFormValue("text")})
	var fe *service.FormError
	if err != nil && !errors.As(err, &fe) {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, postURL(postID))
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, status int, form service.PostForm, fe *service.FormError, postID int64) {
	groups, err := h.posts.ListGroups(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := postFormView(form, fe)
	view.Groups = groupChoices(groups)
	render(w, r, status, "posts/create_post.html", PostFormContext{
		Form:   view,
		IsEdit: postID > 0,
		PostID: postID,
	})
}

// requireLogin redirects anonymous visitors to the login page and reports
// whether the view may go on.
func (h *Handler) requireLogin(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	id := identityFrom(r.Context())
	if !id.IsAuthenticated() {
		redirect(w, r, loginURL(r.URL.Path))
		return id, false
	}
	return id, true
}
