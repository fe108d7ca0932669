package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/pagination"
)

type FeedService interface {
	Index(ctx context.Context, page int) (pagination.Page[model.Post], error)
	GroupFeed(ctx context.Context, slug string, page int) (service.GroupFeed, error)
	ProfileFeed(ctx context.Context, viewer model.Identity, username string, page int) (service.ProfileFeed, error)
	FollowFeed(ctx context.Context, viewer model.Identity, page int) (pagination.Page[model.Post], error)
}

type PostService interface {
	GetPostDetail(ctx context.Context, postID int64) (service.PostDetail, error)
	GetPostForEdit(ctx context.Context, id model.Identity, postID int64) (model.Post, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
	CreatePost(ctx context.Context, id model.Identity, form service.PostForm) (model.Post, error)
	EditPost(ctx context.Context, id model.Identity, postID int64, form service.PostForm) (model.Post, error)
	DeletePost(ctx context.Context, id model.Identity, postID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, id model.Identity, postID int64, form service.CommentForm) (model.Comment, error)
}

type FollowService interface {
	Follow(ctx context.Context, id model.Identity, username string) error
	Unfollow(ctx context.Context, id model.Identity, username string) error
}

type AuthService interface {
	SignUp(ctx context.Context, form service.SignUpForm) (model.User, error)
	Login(ctx context.Context, username, password string) (string, model.Identity, error)
	IssueToken(id model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
}

// PageCache stores rendered pages by request URI.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, page []byte) error
}

type Deps struct {
	Feeds    FeedService
	Posts    PostService
	Comments CommentService
	Follows  FollowService
	Auth     AuthService

	// Cache may be nil, the index is then rendered on every request.
	Cache PageCache

	MediaRoot  string
	SessionTTL int // seconds
	Limiter    *ClientLimiter
}

type Handler struct {
	feeds    FeedService
	posts    PostService
	comments CommentService
	follows  FollowService
	auth     AuthService

	cache      PageCache
	mediaRoot  string
	sessionTTL int
	limiter    *ClientLimiter
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		feeds:      d.Feeds,
		posts:      d.Posts,
		comments:   d.Comments,
		follows:    d.Follows,
		auth:       d.Auth,
		cache:      d.Cache,
		mediaRoot:  d.MediaRoot,
		sessionTTL: d.SessionTTL,
		limiter:    d.Limiter,
	}
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(h.notFound)

	r.Use(h.requestLogging, h.identify, h.throttle)

	r.Handle("/", h.cachePage(http.HandlerFunc(h.index))).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", h.groupPosts).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", h.profile).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/follow/", h.profileFollow).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/profile/{username}/unfollow/", h.profileUnfollow).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/follow/", h.followIndex).Methods(http.MethodGet)

	r.HandleFunc("/create/", h.postCreate).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/", h.postDetail).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/edit/", h.postEdit).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/delete/", h.postDelete).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/comment/", h.addComment).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/auth/login/", h.login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/signup/", h.signup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout/", h.logout).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/about/author/", h.aboutAuthor).Methods(http.MethodGet)
	r.HandleFunc("/about/tech/", h.aboutTech).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	if h.mediaRoot != "" {
		r.PathPrefix(mediaPrefix).
			Handler(http.StripPrefix(mediaPrefix, http.FileServer(http.Dir(h.mediaRoot)))).
			Methods(http.MethodGet, http.MethodHead)
	}

	return r
}
