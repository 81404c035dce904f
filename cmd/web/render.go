package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

// templateSet holds the shared templates (layout, partials, fragments) and one
// clone per page, so every page can define its own "content" block.
type templateSet struct {
	shared *template.Template
	pages  map[string]*template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		// color only lets vetted colour literals into style attributes
		"color": func(s string) template.CSS {
			if lots.IsColorLiteral(s) {
				return template.CSS(s)
			}
			return ""
		},
	}
}

// parseTemplates loads layouts/*.tmpl and partials/*.tmpl into a shared set
// and pages/*.tmpl each into its own clone of it.
func parseTemplates() (*templateSet, error) {
	var shared, pages []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	base, err := template.New("_root").Funcs(funcMap()).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{shared: base, pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFiles(p); err != nil {
			return nil, err
		}
		set.pages[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = clone
	}
	return set, nil
}

func templates() (*templateSet, error) {
	if devMode || tmplCache == nil {
		return parseTemplates()
	}
	return tmplCache, nil
}

// renderPage executes the base layout with the page's content block.
func renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	renderPageStatus(w, r, page, data, http.StatusOK)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, page string, data any, status int) {
	set, err := templates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	t, ok := set.pages[page]
	if !ok {
		http.Error(w, "unknown page "+page, http.StatusInternalServerError)
		return
	}
	execute(w, r, t, "base", data, status)
}

// renderTemplate executes a named fragment.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplateStatus(w, r, name, data, http.StatusOK)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	set, err := templates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	execute(w, r, set.shared, name, data, status)
}

// execute buffers the output so a failing template never leaves a half page.
func execute(w http.ResponseWriter, r *http.Request, t *template.Template, name string, data any, status int) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.ErrorContext(r.Context(), "template exec", slog.String("template", name), slog.Any("error", err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
