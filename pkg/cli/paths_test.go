package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPaths(t *testing.T) {
	paths, err := NewPaths("testapp")
	if err != nil {
		t.Fatalf("NewPaths error: %v", err)
	}
	if filepath.Base(paths.AppDir) != "testapp" {
		t.Errorf("AppDir = %q, want .../testapp", paths.AppDir)
	}
	if filepath.Base(filepath.Dir(paths.AppDir)) != DefaultBaseDir {
		t.Errorf("AppDir = %q, want under %s", paths.AppDir, DefaultBaseDir)
	}
}

func TestPaths_Layout(t *testing.T) {
	appDir := t.TempDir()
	paths := &Paths{AppDir: appDir}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigFile", paths.ConfigFile(), filepath.Join(appDir, DefaultConfigFile)},
		{"MediaDir", paths.MediaDir(), filepath.Join(appDir, "media")},
		{"DataDir", paths.DataDir(), filepath.Join(appDir, "data")},
		{"DataPath", paths.DataPath("manifest"), filepath.Join(appDir, "data", "manifest")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestConfig_Paths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigWithPath("testapp", filepath.Join(dir, "custom", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Paths().MediaDir(), filepath.Join(dir, "custom", "media"); got != want {
		t.Errorf("MediaDir() = %q, want %q", got, want)
	}
}

func TestPaths_EnsureDataDir(t *testing.T) {
	paths := &Paths{AppDir: t.TempDir()}

	if err := paths.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir error: %v", err)
	}

	info, err := os.Stat(paths.DataDir())
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if !info.IsDir() {
		t.Error("DataDir should be a directory")
	}
}
