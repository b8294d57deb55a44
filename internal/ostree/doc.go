// Package ostree reads build snapshots from an ostree repository.
//
// Every build of a stream is an ostree commit on the branch named after the
// stream reference. A [Store] answers the questions the package differ
// needs: whether a commit exists, which commit is the latest, what its
// parent, version and subject are, and the contents of a file inside it.
//
// [Repo] implements [Store] by running the ostree command line tool. Commit
// checksums are validated as SHA-256 digests before they reach the command
// line.
//
// Example usage:
//
//	repo := ostree.NewRepo(s.RepoDir(stream.Bare), s.String())
//	commit, err := repo.Latest(ctx)
//	if err != nil {
//	    return err
//	}
//	raw, err := repo.ReadFile(ctx, commit, "/lib/rpm/Packages")
package ostree
