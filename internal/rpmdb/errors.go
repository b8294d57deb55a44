package rpmdb

import "github.com/pkg/errors"

var (
	ErrDatabase = errors.New("package database error")
)
