package service

import (
	"github.com/pkg/errors"
)

// Identifies a build step. The set is closed; each value maps to exactly one
// executable in the scripts directory.
type Name int

const (
	InitBase Name = iota + 1
	GetRootfs
	ConvertRootfs
	BuildQcow2
	BuildISO
	Checkout
	Apt
	MakeCommit
	Buildsum
	Pkgdiff
	Butane
	SkopeoCopy
	ForwardRoot
	Sign
	Compress
	TestEcho
	PullLocal
)

// Static metadata of a service identifier.
type descriptor struct {
	id         string // Identifier used in pipeline documents.
	executable string // File name in the scripts directory.
}

var descriptors = map[Name]descriptor{
	InitBase:      {"init-base", "init-base.sh"},
	GetRootfs:     {"get-rootfs", "get-rootfs.sh"},
	ConvertRootfs: {"convert-rootfs", "convert-rootfs.sh"},
	BuildQcow2:    {"build-qcow2", "build-qcow2.sh"},
	BuildISO:      {"build-iso", "build-iso.sh"},
	Checkout:      {"checkout", "checkout.sh"},
	Apt:           {"apt", "apt.sh"},
	MakeCommit:    {"make-commit", "make-commit.sh"},
	Buildsum:      {"buildsum", "buildsum"},
	Pkgdiff:       {"pkgdiff", "pkgdiff"},
	Butane:        {"butane", "butane.sh"},
	SkopeoCopy:    {"skopeo-copy", "skopeo-copy.sh"},
	ForwardRoot:   {"forward-root", "forward-root.sh"},
	Sign:          {"sign", "sign.sh"},
	Compress:      {"compress", "compress.sh"},
	TestEcho:      {"test-echo", "test-echo.sh"},
	PullLocal:     {"pull-local", "pull-local.sh"},
}

// Executable names used by earlier releases, still accepted in documents.
var aliases = map[string]Name{
	"buildsum.py": Buildsum,
	"pkgdiff.py":  Pkgdiff,
}

// Returns every service identifier in declaration order.
func Names() []Name {
	names := make([]Name, 0, len(descriptors))
	for n := InitBase; n <= PullLocal; n++ {
		names = append(names, n)
	}
	return names
}

// Parses a service identifier.
//
// The identifier ("get-rootfs"), the executable file name ("get-rootfs.sh")
// and any legacy alias ("buildsum.py") are accepted.
func ParseName(s string) (Name, error) {
	for _, n := range Names() {
		d := descriptors[n]
		if s == d.id || s == d.executable {
			return n, nil
		}
	}
	if n, ok := aliases[s]; ok {
		return n, nil
	}
	return 0, errors.Wrapf(ErrUnknownService, "%q", s)
}

// Returns the identifier used in pipeline documents.
func (n Name) String() string {
	if d, ok := descriptors[n]; ok {
		return d.id
	}
	return "(unknown)"
}

// Returns the executable file name in the scripts directory.
func (n Name) Executable() string {
	return descriptors[n].executable
}

// Returns true if n is one of the declared identifiers.
func (n Name) Valid() bool {
	_, ok := descriptors[n]
	return ok
}

// Implements [encoding.TextMarshaler].
func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, errors.Wrapf(ErrUnknownService, "%d", int(n))
	}
	return []byte(n.String()), nil
}

// Implements [encoding.TextUnmarshaler].
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
