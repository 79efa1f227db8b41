package credstore

import "fmt"

// StorageError reports a failure reading, writing or decrypting the stored
// token. Op is one of "open", "read", "write", "decrypt", "clear".
//
// A missing token is not a StorageError; Load reports it with ok == false.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credential store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
