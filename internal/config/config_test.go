package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOG_JWT_SECRET", "s3cret")
	t.Setenv("BLOG_DATABASE_URL", "postgres://blog@localhost/blog")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":3333", cfg.Addr)
	assert.Equal(t, ":9999", cfg.DiagAddr)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Migrate)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("BLOG_JWT_SECRET", "s3cret")
	t.Setenv("BLOG_ADDR", ":8000")

	cfg, err := Load([]string{"-addr", ":9000", "-storage", "memory"})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "missing secret", args: []string{"-storage", "memory"}},
		{name: "postgres without url", env: map[string]string{"BLOG_JWT_SECRET": "x"}},
		{name: "unknown storage", env: map[string]string{"BLOG_JWT_SECRET": "x"}, args: []string{"-storage", "sqlite"}},
		{name: "empty pool", env: map[string]string{"BLOG_JWT_SECRET": "x"}, args: []string{"-storage", "memory", "-db_max_conns", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOG_JWT_SECRET", "")
			t.Setenv("BLOG_DATABASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestRoutesNeedsNothingElse(t *testing.T) {
	t.Setenv("BLOG_JWT_SECRET", "")

	cfg, err := Load([]string{"-routes"})
	require.NoError(t, err)
	assert.True(t, cfg.Routes)
}

func TestTokenSubject(t *testing.T) {
	cfg := &Config{IssueToken: "peter:Admin,Editor"}
	name, roles := cfg.TokenSubject()
	assert.Equal(t, "peter", name)
	assert.Equal(t, []string{"Admin", "Editor"}, roles)

	cfg.IssueToken = "julia"
	name, roles = cfg.TokenSubject()
	assert.Equal(t, "julia", name)
	assert.Nil(t, roles)
}
