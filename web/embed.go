package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

var index = template.Must(template.ParseFS(assets, "templates/index.tmpl"))

// StaticFS serves the files under static/.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// static/ is embedded at build time; Sub only fails on a bad name
		panic(err)
	}
	return http.FS(sub)
}

// Index renders the single-page UI for a board of the given size.
func Index(w io.Writer, size int) error {
	return index.Execute(w, map[string]any{"Size": size})
}
