package web

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		NewPage(
			"Not Found",
			"",
			"",
			[]string{"templates/pages/404.html"},
			nil,
		).WithStatus(http.StatusNotFound).Render(w, r)
	}
}
