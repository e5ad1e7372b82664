package ingest

import (
	"errors"
	"fmt"
)

// errMissingMessages is the cause recorded when a document has no messages array.
var errMissingMessages = errors.New(`missing "messages" array`)

// NotFoundError means no object matched the secondary export prefix.
type NotFoundError struct {
	Bucket string
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no export object with prefix %q in bucket %q", e.Prefix, e.Bucket)
}

// MalformedDataError means an export object is not valid JSON or lacks its
// messages array.
type MalformedDataError struct {
	Key string
	Err error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed export %s: %v", e.Key, e.Err)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}
