package testutil

import "github.com/pkg/errors"

// errors.As from github.com/pkg/errors with nil handled on either side.
// First argument is the got error, second the want error.
func ErrorsAs(err error, target interface{}) bool {
	// nil vs nil
	if err == target {
		return true
	}

	// errors.As rejects a nil target
	if err != nil && target == nil {
		return false
	}

	return errors.As(err, &target)
}
