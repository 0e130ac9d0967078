package setup

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/blogportal-dev/blogportal/internal/apiclient"
	"github.com/blogportal-dev/blogportal/internal/config"
	"github.com/blogportal-dev/blogportal/internal/handler"
	"github.com/blogportal-dev/blogportal/internal/middleware"
	"github.com/blogportal-dev/blogportal/internal/session"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "templates"
)

type Dependencies struct {
	Handler  *handler.Handler
	Auth     *middleware.Auth
	Sessions *session.Store
	Cfg      *config.Config
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	sessions := session.New(cfg.Server.SecureCookies)

	baseURL := cfg.API.BaseURL
	if env := os.Getenv("API_BASE_URL"); env != "" {
		baseURL = env
	}
	client := apiclient.New(baseURL, cfg.API.StaticBase, sessions)

	templates, err := loadTemplates(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := handler.New(templates, cfg, sessions, client)

	return &Dependencies{
		Handler:  h,
		Auth:     middleware.NewAuth(sessions, cfg.Server.SecureCookies),
		Sessions: sessions,
		Cfg:      cfg,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

// formatDate renders timestamps the way the backend's locale expects,
// dd/mm/yyyy in UTC.
func formatDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"sub":        sub,
		"add":        add,
		"dict":       dict,
		"formatDate": formatDate,
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate || f.Name() == "partials.html" {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
			path.Join(tmplPath, "partials.html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name(), err)
		}
		templates[f.Name()] = tmpl
	}

	if len(templates) == 0 {
		log.Printf("warning: no templates found under %s", tmplPath)
	}
	return templates, nil
}
