package testutil

import (
	"os"
	"testing"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		t.Fatalf("TempDir returns %q which is not a dir", dir)
	}
	c.runCleanups()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestSetenv(t *testing.T) {
	os.Unsetenv("TCLARRAY_TESTUTIL_X")
	c := &cleanuper{}
	Setenv(c, "TCLARRAY_TESTUTIL_X", "1")
	if os.Getenv("TCLARRAY_TESTUTIL_X") != "1" {
		t.Errorf("Setenv didn't set")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv("TCLARRAY_TESTUTIL_X"); ok {
		t.Errorf("cleanup didn't unset")
	}
}

func TestSaveEnvWithPrefix(t *testing.T) {
	os.Setenv("TCLARRAY_TESTUTIL_KEEP", "old")
	defer os.Unsetenv("TCLARRAY_TESTUTIL_KEEP")
	c := &cleanuper{}
	SaveEnvWithPrefix(c, "TCLARRAY_TESTUTIL_")
	os.Setenv("TCLARRAY_TESTUTIL_KEEP", "new")
	os.Setenv("TCLARRAY_TESTUTIL_NEW", "x")
	c.runCleanups()

	if os.Getenv("TCLARRAY_TESTUTIL_KEEP") != "old" {
		t.Errorf("saved variable not restored")
	}
	if _, ok := os.LookupEnv("TCLARRAY_TESTUTIL_NEW"); ok {
		t.Errorf("variable created by test not removed")
	}
}
