package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "file", cfg.Database.Driver)
	assert.Equal(t, "vocabvault.json", cfg.Database.File)
	assert.Equal(t, []string{"all words", "all phrases", "all sentences"}, cfg.Vocab.Categories)
	assert.Equal(t, 10, cfg.Practice.MaxScore)
	assert.Equal(t, 10, cfg.Practice.RoundSize)
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  port: 9191
  log_level: debug
database:
  driver: file
  file: /tmp/vocab-test.json
vocab:
  categories:
    - verbs
    - nouns
practice:
  max_score: 5
  round_size: 4
`
	path := filepath.Join(t.TempDir(), "vocabvault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"verbs", "nouns"}, cfg.Vocab.Categories)
	assert.Equal(t, 5, cfg.Practice.MaxScore)
	assert.Equal(t, 4, cfg.Practice.RoundSize)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VOCABVAULT_SERVER_PORT", "7777")
	t.Setenv("VOCABVAULT_SERVER_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "invalid log level",
			content: `
server:
  log_level: loud
`,
		},
		{
			name: "unknown database driver",
			content: `
database:
  driver: sqlite
`,
		},
		{
			name: "postgres driver without url",
			content: `
database:
  driver: postgres
`,
		},
		{
			name: "empty category list",
			content: `
vocab:
  categories: []
`,
		},
		{
			name: "zero max score",
			content: `
practice:
  max_score: 0
`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vocabvault.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			cfg, err := Load(path)

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
