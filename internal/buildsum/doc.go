// Package buildsum reconstructs a summary of stored build artifacts.
//
// Build outputs live under a storage root as
// "<branch>/<arch>/<stream>/<version>/<platform>/<format>/<file>". A
// [Collector] walks this tree for one branch, bottom-up: each leaf format
// directory yields an [Artifact] whose four slots are filled by classifying
// file names by suffix, and every level above builds a mapping keyed by the
// names of its subdirectories. The result mirrors the six-level hierarchy.
//
// Suffix classification is checked in order:
//
//	*.tar.gz.sig   signature
//	*.xz           location
//	*.sig          uncompressed_signature
//	anything else  uncompressed
//
// If several files map to the same slot, the one enumerated last wins.
// Directories are enumerated in lexical order, so the outcome is stable, but
// the collision is not reported.
//
// Example usage:
//
//	summary, err := buildsum.New(stream.Sisyphus, "/srv/builds").Collect()
//	if err != nil {
//	    return err
//	}
//	if err := buildsum.Write("/srv/builds", stream.Sisyphus, summary, 2); err != nil {
//	    return err
//	}
package buildsum
