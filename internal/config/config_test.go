package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "public.yaml"), []byte(content), 0o644))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
  secure_cookies: true
  log_level: debug
api:
  base_url: http://localhost:8080/api
  static_base: http://localhost:8080
feed:
  page_size: 6
upload:
  max_attachments: 5
  max_attachment_size: 10485760
  allowed_image_mimes:
    - image/png
    - image/jpeg
`)

	cfg := MustLoad(dir)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.API.StaticBase)
	assert.Equal(t, 6, cfg.Feed.PageSize)
	assert.Equal(t, 5, cfg.Upload.MaxAttachments)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxAttachmentSize)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, cfg.Upload.AllowedImageMimes)
}

func TestMustLoadDefaultsPort(t *testing.T) {
	dir := writeConfig(t, `
api:
  base_url: http://localhost:8080/api
  static_base: http://localhost:8080
feed:
  page_size: 6
`)

	cfg := MustLoad(dir)
	assert.Equal(t, "8081", cfg.Server.Port)
}

func TestMustLoadPanics(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(t.TempDir()) })
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := writeConfig(t, "{not yaml: [")
		assert.Panics(t, func() { MustLoad(dir) })
	})

	t.Run("missing base url", func(t *testing.T) {
		dir := writeConfig(t, `
api:
  static_base: http://localhost:8080
feed:
  page_size: 6
`)
		assert.Panics(t, func() { MustLoad(dir) })
	})

	t.Run("zero page size", func(t *testing.T) {
		dir := writeConfig(t, `
api:
  base_url: http://localhost:8080/api
  static_base: http://localhost:8080
`)
		assert.Panics(t, func() { MustLoad(dir) })
	})
}
