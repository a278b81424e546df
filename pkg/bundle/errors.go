// File: pkg/bundle/errors.go
package bundle

import "errors"

var (
	// ErrUsage reports a missing mandatory option or an invalid option value.
	// No output is written when it is returned.
	ErrUsage = errors.New("usage error")

	// ErrDirectoryNotFound reports that the working directory or the output
	// directory could not be accessed. Output written before the failure stays in place.
	ErrDirectoryNotFound = errors.New("directory not found")
)
