package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"singmeasong/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates builds one template set per view, each with every layout and include.
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		return nil, err
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, filepath.Join(templatesDir, "views", view))
		return files
	}

	funcMap := template.FuncMap{
		"embedURL": utils.YouTubeEmbedURL,
		"add": func(a, b int) int {
			return a + b
		},
	}

	// Manual registration to ensure keys match handler expectation
	for _, view := range []string{
		"recommendation/list.html",
		"about.html",
		"error.html",
	} {
		r.AddFromFilesFuncs(view, funcMap, assemble(view)...)
	}

	return r, nil
}
