package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/osforge/osforge/internal"
)

const (

	// Environment variable overriding the scripts directory.
	ScriptsEnv = "OSFORGE_SCRIPTS"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Returns the directory holding the service executables.
//
// The first non-empty source wins: the override argument, $OSFORGE_SCRIPTS,
// the first existing "osforge/scripts" directory under the XDG data
// directories. When nothing exists the path under $XDG_DATA_HOME is
// returned.
//
//	Linux:   ~/.local/share/osforge/scripts or /usr/share/osforge/scripts
func Scripts(override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv(ScriptsEnv); dir != "" {
		return dir
	}

	rel := filepath.Join(internal.Name, "scripts")
	for _, base := range append([]string{xdg.DataHome}, xdg.DataDirs...) {
		dir := filepath.Join(base, rel)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join(xdg.DataHome, rel)
}

// Default path of the Prometheus textfile written after each run.
//
//	Linux:   $XDG_STATE_HOME/osforge/metrics.prom
func MetricsFile() string {
	return filepath.Join(xdg.StateHome, internal.Name, "metrics.prom")
}
