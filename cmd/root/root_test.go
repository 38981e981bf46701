package root

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "card-recon", Cmd.Use)
	assert.Contains(t, Cmd.Short, "credit-card statements")
	assert.NotNil(t, Cmd.Run)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.NotNil(t, Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	if Cmd.PersistentFlags().Lookup("config") == nil {
		Init()
	}

	for _, name := range []string{"config", "log-level", "log-format"} {
		t.Run(name, func(t *testing.T) {
			f := Cmd.PersistentFlags().Lookup(name)
			require.NotNil(t, f)
			assert.Empty(t, f.DefValue)
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n  format: text\n"), 0600))

	ConfigFile, LogLevel, LogFormat = path, "debug", "json"
	t.Cleanup(func() { ConfigFile, LogLevel, LogFormat = "", "", "" })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { ConfigFile = "" })

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestInitContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0600))

	ConfigFile = path
	t.Cleanup(func() {
		ConfigFile = ""
		AppContainer = nil
	})

	require.NoError(t, initContainer())
	c := GetContainer()
	require.NotNil(t, c)
	assert.NotNil(t, c.GetLogger())

	require.NoError(t, initContainer())
	assert.Same(t, c, GetContainer())
}
