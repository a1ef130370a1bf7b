package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/promptcat/pkg/models"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadWithEnvFile(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.NoError(t, err)

	want := models.DefaultSettings()
	assert.Equal(t, want.API.BaseURL, settings.API.BaseURL)
	assert.Equal(t, want.Share.PageURL, settings.Share.PageURL)
	assert.Equal(t, "info", settings.Logging.Level)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	settings := models.DefaultSettings()
	settings.API.BaseURL = "http://localhost:8000/api"
	settings.Author.ID = "author-123"
	settings.UI.RenderMarkdown = true
	require.NoError(t, Save(path, settings))

	loaded, err := LoadWithEnvFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", loaded.API.BaseURL)
	assert.Equal(t, "author-123", loaded.Author.ID)
	assert.True(t, loaded.UI.RenderMarkdown)
	assert.Equal(t, settings.Share.PageURL, loaded.Share.PageURL)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file.example/api\nlogging:\n  level: warn\n"), 0644))

	t.Setenv("PROMPTCAT_API_BASE_URL", "http://env.example/api")
	t.Setenv("PROMPTCAT_AUTHOR_ID", "from-env")

	settings, err := LoadWithEnvFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", settings.API.BaseURL)
	assert.Equal(t, "from-env", settings.Author.ID)
	assert.Equal(t, "warn", settings.Logging.Level)
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PROMPTCAT_SHARE_PAGE_URL=https://share.example/\n"), 0644))

	os.Unsetenv("PROMPTCAT_SHARE_PAGE_URL")
	t.Cleanup(func() { os.Unsetenv("PROMPTCAT_SHARE_PAGE_URL") })

	settings, err := LoadWithEnvFile(filepath.Join(dir, FileName), envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://share.example/", settings.Share.PageURL)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PROMPTCAT_API_BASE_URL":       "api.base_url",
		"PROMPTCAT_LOGGING_LEVEL":      "logging.level",
		"PROMPTCAT_UI_RENDER_MARKDOWN": "ui.render_markdown",
		"PROMPTCAT_AUTHOR_ID":          "author.id",
		"PROMPTCAT_SHARE_PAGE_URL":     "share.page_url",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *models.Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(s *models.Settings) {}},
		{name: "bad scheme", mutate: func(s *models.Settings) { s.API.BaseURL = "ftp://x" }, wantErr: true},
		{name: "missing base url", mutate: func(s *models.Settings) { s.API.BaseURL = "" }, wantErr: true},
		{name: "demo skips base url", mutate: func(s *models.Settings) { s.API.BaseURL = ""; s.API.Demo = true }},
		{name: "bad page url", mutate: func(s *models.Settings) { s.Share.PageURL = "not a url" }, wantErr: true},
		{name: "bad log format", mutate: func(s *models.Settings) { s.Logging.Format = "xml" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			tt.mutate(s)
			err := Validate(s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
