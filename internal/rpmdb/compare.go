package rpmdb

import (
	version "github.com/knqyf263/go-rpm-version"
)

// Three-way ordering between two records of the same package.
type Comparator interface {

	// Returns -1 if a is older than b, 0 if equal, and 1 if newer.
	Compare(a, b Package) int
}

// [Comparator] using rpmvercmp semantics on epoch, version, and release.
type VersionComparator struct{}

// Compares a and b by "epoch:version-release".
func (VersionComparator) Compare(a, b Package) int {
	return version.NewVersion(a.EVR()).Compare(version.NewVersion(b.EVR()))
}
