package models

import "errors"

// ErrNotFound indicates an edit or delete referenced an identifier that is
// not present in its collection, usually a stale reference from the caller.
var ErrNotFound = errors.New("record not found")

// ErrEditWindowClosed indicates an edit targeted a record whose occurrence
// date has already rolled over; past days are append-only history.
var ErrEditWindowClosed = errors.New("record is no longer editable after its day has passed")

// ErrQuotaExceeded indicates the snapshot no longer fits in the bounded
// storage slot.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrInvalidImport indicates an uploaded backup could not be parsed.
var ErrInvalidImport = errors.New("invalid backup file")
