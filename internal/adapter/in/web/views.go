package web

import (
	"time"

	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/pkg/pagination"
)

type PostView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	GroupID   *int64    `json:"group,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"pub_date"`
}

type CommentView struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created"`
}

type GroupView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type AuthorView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type PageView struct {
	Posts       []PostView `json:"object_list"`
	Number      int        `json:"number"`
	NumPages    int        `json:"num_pages"`
	Count       int        `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}

type IndexContext struct {
	Page PageView `json:"page_obj"`
}

type GroupContext struct {
	Group GroupView `json:"group"`
	Page  PageView  `json:"page_obj"`
}

type ProfileContext struct {
	Author     AuthorView `json:"author"`
	PostsCount int        `json:"posts_count"`
	Following  bool       `json:"following"`
	Page       PageView   `json:"page_obj"`
}

type DetailContext struct {
	Post       PostView      `json:"post"`
	Author     AuthorView    `json:"author"`
	Group      *GroupView    `json:"group,omitempty"`
	PostsCount int           `json:"posts_count"`
	Comments   []CommentView `json:"comments"`
	Form       FormView      `json:"form"`
}

// FormView describes a form: submitted or initial values, per-field errors
// and, for the post form, the group choices.
type FormView struct {
	Fields map[string]string   `json:"fields"`
	Errors map[string][]string `json:"errors,omitempty"`
	Groups []GroupView         `json:"groups,omitempty"`
}

type PostFormContext struct {
	Form   FormView `json:"form"`
	IsEdit bool     `json:"is_edit"`
	PostID int64    `json:"post_id,omitempty"`
}

type AuthFormContext struct {
	Form FormView `json:"form"`
	Next string   `json:"next,omitempty"`
}

type AboutContext struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type errorContext struct {
	Path string `json:"path"`
}

func toPostView(p model.Post) PostView {
	return PostView{
		ID:        p.ID,
		Text:      p.Text,
		Author:    p.Author,
		GroupID:   p.GroupID,
		Image:     mediaURL(p.Image),
		CreatedAt: p.CreatedAt,
	}
}

func toCommentView(c model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toGroupView(g model.Group) GroupView {
	return GroupView{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func toAuthorView(u model.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username}
}

func toPageView(p pagination.Page[model.Post]) PageView {
	posts := make([]PostView, 0, len(p.Items))
	for _, post := range p.Items {
		posts = append(posts, toPostView(post))
	}
	return PageView{
		Posts:       posts,
		Number:      p.Number,
		NumPages:    p.NumPages,
		Count:       p.Count,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}

func toDetailContext(d service.PostDetail) DetailContext {
	out := DetailContext{
		Post:       toPostView(d.Post),
		Author:     toAuthorView(d.Author),
		PostsCount: d.PostsCount,
		Comments:   make([]CommentView, 0, len(d.Comments)),
		Form:       FormView{Fields: map[string]string{"text": ""}},
	}
	if d.Group != nil {
		g := toGroupView(*d.Group)
		out.Group = &g
	}
	for _, c := range d.Comments {
		out.Comments = append(out.Comments, toCommentView(c))
	}
	return out
}

func groupChoices(groups []model.Group) []GroupView {
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupView(g))
	}
	return out
}
