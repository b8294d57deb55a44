// Parses flags and configures logging for osforge.
//
// Global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Add source locations to log records.
//	-d, --debug     Enable debug output.
//
// Commands:
//
//	run <config>                               Run a pipeline document.
//	plan <config>                              Print the service chain as DOT.
//	buildsum <branch> <storage>                Summarize stored build artifacts.
//	pkgdiff <stream> <repo_root> <commit>      Describe a commit and its package changes.
//	stream export|version|commit <stream> <repo_root>
//	version                                    Show version information.
//
// buildsum and pkgdiff are also services: run with -a they print their
// argument template and exit, as the service introspection protocol expects.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level and verbosity before
// the command runs.
package cli
