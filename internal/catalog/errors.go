package catalog

import "errors"

var (
	// ErrNotFound reports a program, season or episode that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists reports an attempt to create a program or season twice.
	ErrExists = errors.New("already exists")
	// ErrInvalid reports arguments the catalogue cannot store.
	ErrInvalid = errors.New("invalid catalogue entry")
	// ErrLocked reports that another process holds the catalogue.
	ErrLocked = errors.New("catalogue is in use by another ripmap process")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
