package pythoneval

import (
	"github.com/kiteco/pyeval/kite-golib/errors"
)

var (
	// ErrUnsupported is returned by a context for a query that does not apply to it
	ErrUnsupported = errors.New("unsupported operation")
	// ErrNotFound is returned for an index or key that does not exist
	ErrNotFound = errors.New("not found")
)
