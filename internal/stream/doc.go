// Package stream models the addressing scheme of build outputs.
//
// A stream is a named lineage of builds for one branch and architecture,
// referenced as "<osname>/<arch>/<branch>/<name>" (for example
// "altcos/x86_64/sisyphus/base"). Builds in a stream progress through
// versions ordered by (major, minor). Build artifacts are stored under
// "<branch>/<arch>/<stream>/<version>/<platform>/<format>/", where branch,
// architecture, platform and format come from closed sets.
//
// A [Version] has three renderings: native ("1.2"), path ("1_2", used as a
// directory name), and full ("sisyphus_base.1.2", stored in commit
// metadata). [ParseVersion] reads the full rendering and accepts either
// separator between major and minor.
package stream
