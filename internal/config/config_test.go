package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.LLM.Model)
	assert.Equal(t, 10, cfg.Generator.DefaultQuestions)
	assert.Equal(t, 50, cfg.Generator.MaxQuestions)
	assert.InDelta(t, 0.7, cfg.Generator.TechnicalShare, 1e-9)
	assert.Equal(t, int64(5*1024*1024), cfg.Resume.MaxUploadBytes)
	assert.False(t, cfg.VectorStore.Enabled)
	assert.Equal(t, "gemini-embedding-001", cfg.Embeddings.Model)
	assert.Equal(t, 24*time.Hour, cfg.Sessions.TTL)
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	content := `server:
  port: 9090
generator:
  default_questions: 5
  technical_share: 0.5
vector_store:
  enabled: true
  top_k: 8
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Generator.DefaultQuestions)
	assert.InDelta(t, 0.5, cfg.Generator.TechnicalShare, 1e-9)
	assert.True(t, cfg.VectorStore.Enabled)
	assert.Equal(t, 8, cfg.VectorStore.TopK)
	// untouched sections keep defaults
	assert.Equal(t, "claude", cfg.LLM.Provider)
}

func TestLoadConfig_EnvExpansionInYAML(t *testing.T) {
	t.Setenv("TEST_INTERVIEW_API_KEY", "sk-test-123")

	content := "llm:\n  api_key: \"${TEST_INTERVIEW_API_KEY}\"\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_API_KEY", "sk-env")
	t.Setenv("VECTOR_DATABASE_URL", "postgres://localhost/questions")
	t.Setenv("SESSIONS_ENABLED", "false")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://localhost/questions", cfg.VectorStore.DatabaseURL)
	assert.True(t, cfg.VectorStore.Enabled, "setting the database URL enables the vector store")
	assert.False(t, cfg.Sessions.Enabled)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EXPAND_TEST_VALUE", "hello")

	assert.Equal(t, "x hello y", expandEnvVars("x ${EXPAND_TEST_VALUE} y"))
	assert.Equal(t, "x hello y", expandEnvVars("x $EXPAND_TEST_VALUE y"))
	// unset variables are left as-is
	assert.Equal(t, "${UNSET_VARIABLE_12345}", expandEnvVars("${UNSET_VARIABLE_12345}"))
}
