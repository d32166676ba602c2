//go:build !windows

package open

import "os"

// NewSafeFile opens path for writing with access restricted to the
// current user, truncating any existing content.
func NewSafeFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_RDWR, os.FileMode(0600))
}
