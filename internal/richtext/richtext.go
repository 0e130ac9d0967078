// Package richtext renders post and comment bodies to HTML safe for
// embedding in pages. Markdown goes through goldmark, the result through a
// bluemonday policy, so whatever the backend stored can be trusted at render
// time.
package richtext

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.AllowAttrs("class").OnElements("p", "span", "div")

	return &Renderer{md: md, policy: policy}
}

// Render converts source text to sanitized HTML for templates.
func (r *Renderer) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		// Fall back to the escaped source rather than dropping the body.
		return template.HTML(template.HTMLEscapeString(text))
	}
	sanitized := r.policy.Sanitize(buf.String())
	return template.HTML(strings.TrimSpace(sanitized))
}

// Excerpt produces a plain-text preview of at most n runes, for cards and
// the dashboard table.
func (r *Renderer) Excerpt(text string, n int) string {
	plain := bluemonday.StrictPolicy().Sanitize(string(r.Render(text)))
	plain = strings.Join(strings.Fields(plain), " ")
	runes := []rune(plain)
	if len(runes) <= n {
		return plain
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
