// Package rpmdb reads installed package records from an RPM database.
//
// A [Reader] turns the raw bytes of a package database, as stored inside a
// build snapshot, into a mapping from package name to [Package]. [DBReader]
// stages the bytes in a temporary directory and lists the packages with
// go-rpmdb, which understands the Berkeley DB, NDB, and SQLite formats.
//
// A [Comparator] orders two records of the same package. [VersionComparator]
// applies rpmvercmp semantics to "epoch:version-release".
//
// Example usage:
//
//	pkgs, err := rpmdb.NewDBReader().Read(raw)
//	if err != nil {
//	    return err
//	}
//	if rpmdb.VersionComparator{}.Compare(pkgs["bash"], old) > 0 {
//	    fmt.Println("bash was upgraded")
//	}
package rpmdb
