package config

import (
	"os"
	"testing"
)

// chdirT changes into dir for the duration of the test, mirroring
// testing.T.Chdir, which is unavailable before Go 1.24.
func chdirT(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
