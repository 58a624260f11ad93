package server

import (
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a shortcut on the search screen that runs a fixed query.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Query string `json:"query"`
}

type CategoriesResponse struct {
	Data []Category `json:"data"`
}

var categories = newCategories([]struct {
	query string
	emoji string
}{
	{"nature", "🌿"},
	{"cars", "🚗"},
	{"anime", "🎭"},
	{"space", "🌌"},
	{"gaming", "🎮"},
	{"minimal", "⚪"},
})

func newCategories(in []struct {
	query string
	emoji string
}) []Category {
	title := cases.Title(language.English)
	out := make([]Category, 0, len(in))
	for i, c := range in {
		out = append(out, Category{ID: i + 1, Name: title.String(c.query), Emoji: c.emoji, Query: c.query})
	}
	return out
}

func (s *Server) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Data: categories})
}
