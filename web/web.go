// Package web holds the HTML templates rendered by the server.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page.
const Layout = "layouts/base"

//go:embed templates
var files embed.FS

// Engine returns a view engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("paragraphs", paragraphs)
	return engine
}

// paragraphs splits text on blank lines so each block renders as its own paragraph.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}
