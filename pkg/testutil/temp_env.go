package testutil

import (
	"os"
	"strings"
)

// Setenv sets an environment variable until the test ends, and returns value.
func Setenv(c Cleanuper, name, value string) string {
	saveEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv removes an environment variable until the test ends.
func Unsetenv(c Cleanuper, name string) {
	saveEnv(c, name)
	os.Unsetenv(name)
}

func saveEnv(c Cleanuper, name string) {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}

// SaveEnvWithPrefix saves every environment variable whose name starts with
// prefix, so that a test can freely set and unset them through the
// Environment array backend. Variables created by the test are removed.
func SaveEnvWithPrefix(c Cleanuper, prefix string) {
	saved := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, prefix) {
			saved[k] = v
		}
	}
	c.Cleanup(func() {
		for _, kv := range os.Environ() {
			if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, prefix) {
				if _, keep := saved[k]; !keep {
					os.Unsetenv(k)
				}
			}
		}
		for k, v := range saved {
			os.Setenv(k, v)
		}
	})
}
