package aeroki

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAerokiEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCompiler, EnvTempDir, EnvEncoding, EnvPTY, EnvDebug} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v) // restored on cleanup
			os.Unsetenv(key)
		}
	}
}

func TestLoadSettingsCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "aerokiide.toml")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", s.OutputEncoding)
	assert.Equal(t, "auto", s.GUI.Theme)
	assert.Equal(t, 10, s.GUI.RecentLimit)
	assert.Nil(t, s.UsePTY)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultSettingsFile, string(data))
}

func TestLoadSettingsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("compiler = [unterminated"), 0o644))

	s, err := LoadSettings(path)
	require.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "", s.Compiler)
}

func TestLoadSettingsEmptyPath(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aerokiide.toml")
	pty := false
	s := &Settings{
		Compiler:       "/opt/aeroki/aeroki",
		OutputEncoding: "windows-874",
		UsePTY:         &pty,
		GUI:            GUISettings{Theme: "dark", FontSize: 14},
		RecentFiles:    []string{"/a.aero", "/b.aero"},
	}
	require.NoError(t, s.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s.Compiler, loaded.Compiler)
	assert.Equal(t, s.OutputEncoding, loaded.OutputEncoding)
	require.NotNil(t, loaded.UsePTY)
	assert.False(t, *loaded.UsePTY)
	assert.Equal(t, "dark", loaded.GUI.Theme)
	assert.Equal(t, 14, loaded.GUI.FontSize)
	assert.Equal(t, s.RecentFiles, loaded.RecentFiles)
}

func TestApplyEnvFromFileAndProcess(t *testing.T) {
	clearAerokiEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"AEROKI_COMPILER=/from/file\nAEROKI_ENCODING=tis-620\nAEROKI_PTY=false\n"), 0o644))
	t.Setenv(EnvCompiler, "/from/process")

	s := &Settings{}
	applied, err := s.ApplyEnv(envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{EnvCompiler, EnvEncoding, EnvPTY}, applied)
	assert.Equal(t, "/from/process", s.Compiler)
	assert.Equal(t, "tis-620", s.OutputEncoding)
	require.NotNil(t, s.UsePTY)
	assert.False(t, *s.UsePTY)
}

func TestApplyEnvDebugCategories(t *testing.T) {
	clearAerokiEnv(t)
	t.Setenv(EnvDebug, "process,prompt")

	s := &Settings{}
	_, err := s.ApplyEnv()
	require.NoError(t, err)
	assert.True(t, s.Debug)
	assert.Equal(t, "process,prompt", s.LogCategories)

	logger := s.LauncherConfig().Logger
	assert.True(t, logger.IsCategoryEnabled(CatProcess))
	assert.True(t, logger.IsCategoryEnabled(CatPrompt))
	assert.False(t, logger.IsCategoryEnabled(CatGUI))
}

func TestApplyEnvBadBool(t *testing.T) {
	clearAerokiEnv(t)
	t.Setenv(EnvPTY, "sometimes")
	_, err := (&Settings{}).ApplyEnv()
	assert.Error(t, err)
}

func TestLauncherConfig(t *testing.T) {
	kill := false
	s := &Settings{
		Compiler:      "aeroki-dev",
		TempDir:       "/tmp/x",
		PromptMarker:  "Input",
		KillPrevious:  &kill,
		Debug:         true,
		LogCategories: "",
	}
	cfg := s.LauncherConfig()
	assert.Equal(t, "aeroki-dev", cfg.CompilerPath)
	assert.Equal(t, "/tmp/x", cfg.TempDir)
	assert.Equal(t, "Input", cfg.PromptMarker)
	assert.Equal(t, DefaultPromptTerminator, cfg.PromptTerminator)
	assert.Equal(t, DefaultOutputEncoding, cfg.OutputEncoding)
	assert.False(t, cfg.KillPrevious)
	assert.True(t, cfg.Logger.IsCategoryEnabled(CatProcess))
}

func TestSettingsClone(t *testing.T) {
	on := true
	s := &Settings{
		Compiler:    "a",
		SearchDirs:  []string{"/x"},
		RecentFiles: []string{"/r"},
		UsePTY:      &on,
	}
	c := s.Clone()
	c.Compiler = "b"
	c.SearchDirs[0] = "/y"
	c.RecentFiles = append(c.RecentFiles, "/s")
	*c.UsePTY = false

	assert.Equal(t, "a", s.Compiler)
	assert.Equal(t, []string{"/x"}, s.SearchDirs)
	assert.Equal(t, []string{"/r"}, s.RecentFiles)
	assert.True(t, *s.UsePTY)
	assert.Nil(t, c.KillPrevious)
}
