package storage

import "fmt"

// NotFoundError reports that a requested record does not exist. No
// write is attempted when it is returned.
type NotFoundError struct {
	// Kind is the record type, e.g. "expense" or "split".
	Kind string
	// ID is the identifier that was looked up.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// StorageError reports an I/O or constraint failure from the underlying
// store. Because callers cannot always tell how far a failed operation
// got, a StorageError from a multi-row operation should be treated as
// "re-read state before retrying", not as a clean rollback guarantee.
type StorageError struct {
	// Op names the operation that failed, e.g. "create expense".
	Op string
	// Err is the underlying driver error.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
