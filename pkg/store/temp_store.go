package store

import (
	"fmt"
	"path/filepath"

	"github.com/tclarray/tclarray/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(fmt.Sprintf("Failed to create Store instance: %v", err))
	}
	c.Cleanup(func() { st.Close() })
	return st
}
