package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	cfg := config.Default()
	cfg.Cache.Dir = "/srv/netdraw-cache"
	if dir, _ := cacheDir(cfg); dir != "/srv/netdraw-cache" {
		t.Errorf("configured cacheDir() = %q", dir)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(noopWriter{}, LogInfo)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		noCache bool
		want    string
	}{
		{"file by default", func(*config.Config) {}, false, "file"},
		{"no-cache flag", func(*config.Config) {}, true, "disabled (--no-cache)"},
		{"disabled in config", func(cfg *config.Config) { cfg.Cache.Disabled = true }, false, "disabled (cache.disabled in config)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			ch, err := c.newCache(t.Context(), cfg, tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer ch.Close()

			var got string
			switch ch := ch.(type) {
			case *cache.FileCache:
				got = "file"
			case *cache.NullCache:
				got = ch.String()
			}
			if got != tt.want {
				t.Errorf("backend = %s, want %s", got, tt.want)
			}
		})
	}
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
