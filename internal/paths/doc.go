// Provides platform-appropriate paths for osforge.
//
// Paths follow XDG conventions. The program name "osforge" is used as the
// subdirectory under each base path.
//
// Example usage:
//
//	dir := paths.Scripts("")           // flag, $OSFORGE_SCRIPTS, or XDG data dirs
//	metrics := paths.MetricsFile()     // $XDG_STATE_HOME/osforge/metrics.prom
package paths
