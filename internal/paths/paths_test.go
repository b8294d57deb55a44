package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptsOverride(t *testing.T) {
	t.Setenv(ScriptsEnv, "/from/env")
	assert.Equal(t, "/from/flag", Scripts("/from/flag"))
}

func TestScriptsEnv(t *testing.T) {
	t.Setenv(ScriptsEnv, "/from/env")
	assert.Equal(t, "/from/env", Scripts(""))
}

func TestScriptsDataDirs(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv(ScriptsEnv, "")

	home := t.TempDir()
	system := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_DATA_DIRS", system)
	xdg.Reload()

	assert.Equal(t, filepath.Join(home, "osforge", "scripts"), Scripts(""), "falls back to the data home")

	installed := filepath.Join(system, "osforge", "scripts")
	require.NoError(t, os.MkdirAll(installed, DefaultDirMode))
	assert.Equal(t, installed, Scripts(""))

	local := filepath.Join(home, "osforge", "scripts")
	require.NoError(t, os.MkdirAll(local, DefaultDirMode))
	assert.Equal(t, local, Scripts(""), "data home takes precedence")
}

func TestMetricsFile(t *testing.T) {
	assert.Equal(t, "metrics.prom", filepath.Base(MetricsFile()))
	assert.Equal(t, "osforge", filepath.Base(filepath.Dir(MetricsFile())))
}
