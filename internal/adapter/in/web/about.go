package web

import "net/http"

func (h *Handler) aboutAuthor(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "about/author.html", AboutContext{
		Title: "About the author",
		Text:  "Yatube is a small blogging platform: write posts, join groups, comment and follow other authors.",
	})
}

func (h *Handler) aboutTech(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "about/tech.html", AboutContext{
		Title: "Technologies",
		Text:  "Go, gorilla/mux, PostgreSQL through pgx and squirrel, Redis for the page cache.",
	})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
