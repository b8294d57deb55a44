package stream

import (
	"slices"

	"github.com/pkg/errors"
)

// Distribution branch a stream is built from.
type Branch string

const (
	Sisyphus Branch = "sisyphus"
	P10      Branch = "p10"
)

// CPU architecture of a stream.
type Arch string

const (
	X86_64  Arch = "x86_64"
	Aarch64 Arch = "aarch64"
)

// Target platform of a build artifact.
type Platform string

const (
	Qemu  Platform = "qemu"
	Metal Platform = "metal"
)

// File format of a build artifact.
type Format string

const (
	Qcow2 Format = "qcow2"
	ISO   Format = "iso"
	Raw   Format = "raw"
	OCI   Format = "oci"
)

// Repository mode of an ostree repository.
type Mode string

const (
	Bare     Mode = "bare"
	BareUser Mode = "bare-user"
	Archive  Mode = "archive"
)

var (
	Branches  = []Branch{Sisyphus, P10}
	Arches    = []Arch{X86_64, Aarch64}
	Platforms = []Platform{Qemu, Metal}
	Formats   = []Format{Qcow2, ISO, Raw, OCI}
	Modes     = []Mode{Bare, BareUser, Archive}
)

// Parses a branch name.
func ParseBranch(s string) (Branch, error) {
	return parseEnum("branch", s, Branches)
}

// Parses an architecture name.
func ParseArch(s string) (Arch, error) {
	return parseEnum("architecture", s, Arches)
}

// Parses a platform name.
func ParsePlatform(s string) (Platform, error) {
	return parseEnum("platform", s, Platforms)
}

// Parses a format name.
func ParseFormat(s string) (Format, error) {
	return parseEnum("format", s, Formats)
}

// Parses a repository mode.
func ParseMode(s string) (Mode, error) {
	return parseEnum("repository mode", s, Modes)
}

// Returns s as a member of values, or [ErrUnknownValue].
func parseEnum[T ~string](kind, s string, values []T) (T, error) {
	if slices.Contains(values, T(s)) {
		return T(s), nil
	}
	return "", errors.Wrapf(ErrUnknownValue, "%s %q", kind, s)
}
