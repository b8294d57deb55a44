package rpmdb

import (
	"fmt"
	"strconv"
)

// Installed package record.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Release string `json:"release"`
	Epoch   int    `json:"epoch"`
	Summary string `json:"summary"`
}

// Returns "name-version-release".
func (p Package) String() string {
	return fmt.Sprintf("%s-%s-%s", p.Name, p.Version, p.Release)
}

// Returns "epoch:version-release", the form ordered by [VersionComparator].
func (p Package) EVR() string {
	return strconv.Itoa(p.Epoch) + ":" + p.Version + "-" + p.Release
}
