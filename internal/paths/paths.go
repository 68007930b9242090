package paths

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const configFileName = "linstor-client.toml"

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := homedir.Dir()
	return h
}

// ConfigDir returns the client config directory ($XDG_CONFIG_HOME/linstor).
func ConfigDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "linstor")
	}
	return filepath.Join(homeDir(), ".config", "linstor")
}

// ConfigFile returns the path to linstor-client.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Expand resolves a leading ~ in a user supplied path.
func Expand(path string) (string, error) {
	return homedir.Expand(path)
}

// CacheDir returns the client cache directory ($XDG_CACHE_HOME/linstor).
func CacheDir() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return filepath.Join(v, "linstor")
	}
	return filepath.Join(homeDir(), ".cache", "linstor")
}

// EnsureDir creates dir with owner-only permissions if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
