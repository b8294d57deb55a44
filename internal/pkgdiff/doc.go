// Package pkgdiff compares the package sets of two build snapshots.
//
// A snapshot is the set of installed packages recorded in the package
// database of an ostree commit. [Compute] compares a snapshot with the one
// of its parent commit:
//
//	new       names in the current snapshot only
//	removed   names in the parent snapshot only
//	updated   names in both whose current record orders strictly greater
//
// Ties and downgrades are not reported as updates. A commit without a
// parent yields an empty diff.
//
// A [Generator] resolves a commit of a stream, reads both package databases,
// and assembles the [Metadata] document describing the build.
//
// Example usage:
//
//	gen := pkgdiff.NewGenerator(repo, rpmdb.NewDBReader(), rpmdb.VersionComparator{})
//	meta, err := gen.Generate(ctx, s, pkgdiff.Latest)
//	if err != nil {
//	    return err
//	}
//	path, err := meta.Write(s, 2)
package pkgdiff
