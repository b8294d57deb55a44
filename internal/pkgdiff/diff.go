package pkgdiff

import (
	"cmp"
	"slices"

	"github.com/osforge/osforge/internal/rpmdb"
)

// Package present in both snapshots with a newer current record.
type Update struct {
	New rpmdb.Package `json:"new"`
	Old rpmdb.Package `json:"old"`
}

// Differences between a snapshot and its parent.
type Diff struct {
	New     []rpmdb.Package // Packages only in the current snapshot.
	Removed []rpmdb.Package // Packages only in the parent snapshot.
	Updated []Update        // Packages upgraded since the parent.
}

// Compares current with parent. A nil parent yields an empty diff.
func Compute(current, parent map[string]rpmdb.Package, comparator rpmdb.Comparator) Diff {
	if parent == nil {
		return Diff{
			New:     []rpmdb.Package{},
			Removed: []rpmdb.Package{},
			Updated: []Update{},
		}
	}
	return Diff{
		New:     Unique(current, parent),
		Removed: Unique(parent, current),
		Updated: Updated(current, parent, comparator),
	}
}

// Returns the packages of a whose names are not in b, sorted by name.
func Unique(a, b map[string]rpmdb.Package) []rpmdb.Package {
	pkgs := []rpmdb.Package{}
	for name, pkg := range a {
		if _, ok := b[name]; !ok {
			pkgs = append(pkgs, pkg)
		}
	}
	return Sorted(pkgs)
}

// Returns the (a, b) pairs, sorted by name, for every name in both
// mappings where a orders strictly greater than b.
func Updated(a, b map[string]rpmdb.Package, comparator rpmdb.Comparator) []Update {
	updates := []Update{}
	for name, cur := range a {
		old, ok := b[name]
		if ok && comparator.Compare(cur, old) > 0 {
			updates = append(updates, Update{New: cur, Old: old})
		}
	}
	slices.SortFunc(updates, func(x, y Update) int {
		return cmp.Compare(x.New.Name, y.New.Name)
	})
	return updates
}

// Returns all packages of a mapping sorted by name.
func Installed(pkgs map[string]rpmdb.Package) []rpmdb.Package {
	list := make([]rpmdb.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		list = append(list, pkg)
	}
	return Sorted(list)
}

// Sorts pkgs by name in place and returns it.
func Sorted(pkgs []rpmdb.Package) []rpmdb.Package {
	slices.SortFunc(pkgs, func(x, y rpmdb.Package) int {
		return cmp.Compare(x.Name, y.Name)
	})
	return pkgs
}
