package table

import "errors"

// ErrClosed is returned for commands sent to a table that has been removed
var ErrClosed = errors.New("table is closed")
