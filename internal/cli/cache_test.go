package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "cache")
	dir, err := cacheDir(custom)
	if err != nil {
		t.Fatalf("cacheDir(%q) error: %v", custom, err)
	}
	if dir != custom {
		t.Errorf("cacheDir(%q) = %q", custom, dir)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir("")
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}
