package handler

import (
	"html/template"
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/apiclient"
	"github.com/blogportal-dev/blogportal/internal/comments"
	"github.com/blogportal-dev/blogportal/internal/config"
	"github.com/blogportal-dev/blogportal/internal/richtext"
	"github.com/blogportal-dev/blogportal/internal/session"
)

type Handler struct {
	Templates map[string]*template.Template
	Cfg       *config.Config
	Sessions  *session.Store
	API       *apiclient.Client
	Comments  *comments.Manager
	Rich      *richtext.Renderer
}

func New(templates map[string]*template.Template, cfg *config.Config, sessions *session.Store, client *apiclient.Client) *Handler {
	return &Handler{
		Templates: templates,
		Cfg:       cfg,
		Sessions:  sessions,
		API:       client,
		Comments:  comments.NewManager(client),
		Rich:      richtext.New(),
	}
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/favicon.ico")
}
