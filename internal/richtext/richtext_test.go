package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	r := New()

	cases := []struct {
		name   string
		input  string
		expect []string
	}{
		{"paragraph", "hello world", []string{"<p>hello world</p>"}},
		{"emphasis", "some **bold** text", []string{"<strong>bold</strong>"}},
		{"link", "[docs](https://example.com)", []string{`href="https://example.com"`, ">docs</a>"}},
		{"image", "![alt](https://example.com/a.png)", []string{`<img`, `src="https://example.com/a.png"`}},
		{"gfm strikethrough", "~~gone~~", []string{"<del>gone</del>"}},
		{"code block", "```\nx := 1\n```", []string{"<pre>", "x := 1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(r.Render(tc.input))
			for _, want := range tc.expect {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestRenderStripsScripts(t *testing.T) {
	r := New()

	cases := []struct {
		name  string
		input string
	}{
		{"script tag", `hi <script>alert("x")</script> there`},
		{"event handler", `<img src="x.png" onerror="alert(1)">`},
		{"javascript href", `[click](javascript:alert(1))`},
		{"iframe", `<iframe src="https://evil.example"></iframe>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(r.Render(tc.input))
			assert.NotContains(t, got, "<script")
			assert.NotContains(t, got, "onerror")
			assert.NotContains(t, got, "javascript:")
			assert.NotContains(t, got, "<iframe")
		})
	}
}

func TestRenderKeepsRawHTMLClasses(t *testing.T) {
	r := New()
	got := string(r.Render(`<p class="lede">intro</p>`))
	assert.Contains(t, got, `class="lede"`)
}

func TestExcerpt(t *testing.T) {
	r := New()

	t.Run("strips markup and collapses whitespace", func(t *testing.T) {
		got := r.Excerpt("# Title\n\nsome **bold**   text", 100)
		assert.Equal(t, "Title some bold text", got)
	})

	t.Run("truncates at rune boundary", func(t *testing.T) {
		got := r.Excerpt("héllo wörld wide", 7)
		assert.Equal(t, "héllo w…", got)
		assert.True(t, strings.HasSuffix(got, "…"))
	})

	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "short", r.Excerpt("short", 160))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", r.Excerpt("", 160))
	})
}
