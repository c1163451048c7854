//go:build !unix && !windows

package configedit

import (
	"errors"
	"fmt"
)

// ErrLockUnsupported is returned by Persist when Editor.Lock is set on a
// platform without file locking.
var ErrLockUnsupported = errors.New("file locking is not supported on this platform")

func lockFile(path string) (func(), error) {
	return nil, fmt.Errorf("failed to lock %s: %w", path, ErrLockUnsupported)
}
