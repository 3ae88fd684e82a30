package cli

import (
	"os"
	"path/filepath"
)

// Paths locates the files of one application under its directory,
// normally ~/.pluck/<app>.
type Paths struct {
	AppDir string
}

// NewPaths returns the default paths for appName (~/.pluck/<app>).
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{AppDir: filepath.Join(home, DefaultBaseDir, appName)}, nil
}

// Paths returns the paths next to the loaded config file, so that a custom
// --config location also relocates generated notes and the manifest.
func (c *Config) Paths() *Paths {
	return &Paths{AppDir: c.Dir()}
}

// ConfigFile returns <app>/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir, DefaultConfigFile)
}

// MediaDir returns the default directory for generated notes (<app>/media).
func (p *Paths) MediaDir() string {
	return filepath.Join(p.AppDir, "media")
}

// DataDir returns the data directory (<app>/data).
func (p *Paths) DataDir() string {
	return filepath.Join(p.AppDir, "data")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir(), 0755)
}

// DataPath returns a path within the data directory.
func (p *Paths) DataPath(name string) string {
	return filepath.Join(p.DataDir(), name)
}
