package rpmdb

import (
	"os"
	"path/filepath"

	gorpmdb "github.com/knqyf263/go-rpmdb/pkg"
	"github.com/pkg/errors"

	// Registers the "sqlite" database/sql driver that go-rpmdb opens.
	_ "github.com/glebarez/go-sqlite"
)

// Default name of the database file when staged for reading.
const DefaultFileName = "Packages"

// Lists the installed packages held by raw database bytes.
type Reader interface {
	Read(raw []byte) (map[string]Package, error)
}

// [Reader] backed by go-rpmdb.
type DBReader struct {
	fileName string // Name the staged file is given; selects the database format.
}

// Creates a new [DBReader] for databases named "Packages".
func NewDBReader() *DBReader {
	return &DBReader{fileName: DefaultFileName}
}

// Creates a new [DBReader] staging databases under the given file name,
// such as "rpmdb.sqlite" or "Packages.db".
func NewDBReaderNamed(fileName string) *DBReader {
	return &DBReader{fileName: fileName}
}

// Reads every package from the database.
//
// The bytes are written to a temporary directory that is removed before
// returning. Packages are keyed by name; if a name repeats, the last record
// read wins.
func (r *DBReader) Read(raw []byte) (map[string]Package, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrDatabase, "empty database")
	}

	dir, err := os.MkdirTemp("", "osforge-rpmdb-")
	if err != nil {
		return nil, errors.Wrap(ErrDatabase, err.Error())
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, r.fileName)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return nil, errors.Wrap(ErrDatabase, err.Error())
	}

	db, err := gorpmdb.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDatabase, "open: %v", err)
	}
	defer db.Close()

	infos, err := db.ListPackages()
	if err != nil {
		return nil, errors.Wrapf(ErrDatabase, "list packages: %v", err)
	}

	return fromInfos(infos), nil
}

// Converts go-rpmdb records into packages keyed by name. A later record
// replaces an earlier one of the same name.
func fromInfos(infos []*gorpmdb.PackageInfo) map[string]Package {
	pkgs := make(map[string]Package, len(infos))
	for _, info := range infos {
		pkgs[info.Name] = Package{
			Name:    info.Name,
			Version: info.Version,
			Release: info.Release,
			Epoch:   info.EpochNum(),
			Summary: info.Summary,
		}
	}
	return pkgs
}
