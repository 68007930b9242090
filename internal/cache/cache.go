// Package cache stores printed tool output on disk for a short time, keyed by
// controller list, tool and arguments.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beornf/linstor-api-go/internal/paths"
)

// Key identifies one cached call.
type Key struct {
	Controllers []string
	Tool        string
	Args        json.RawMessage
}

type entry struct {
	Content  []byte    `json:"content"`
	ExitCode int       `json:"exit_code"`
	Created  time.Time `json:"created"`
	Expires  time.Time `json:"expires"`
}

// Hit is a valid cache entry.
type Hit struct {
	Content  []byte
	ExitCode int
	Created  time.Time
}

// Get looks up a cached response. Expired or unreadable entries are removed
// and reported as a miss.
func Get(key Key) (Hit, bool) {
	path := entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return Hit{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return Hit{}, false
	}
	if time.Now().After(e.Expires) {
		_ = os.Remove(path)
		return Hit{}, false
	}
	return Hit{Content: e.Content, ExitCode: e.ExitCode, Created: e.Created}, true
}

// Put stores a response for ttl.
func Put(key Key, content []byte, exitCode int, ttl time.Duration) error {
	if err := paths.EnsureDir(cacheDir()); err != nil {
		return err
	}

	now := time.Now()
	data, err := json.Marshal(entry{
		Content:  content,
		ExitCode: exitCode,
		Created:  now,
		Expires:  now.Add(ttl),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(entryPath(key), data, 0600)
}

func entryPath(key Key) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s", strings.Join(key.Controllers, ","), key.Tool, string(key.Args))
	name := hex.EncodeToString(h.Sum(nil))[:32]
	return filepath.Join(cacheDir(), name+".json")
}

func cacheDir() string {
	return filepath.Join(paths.CacheDir(), "responses")
}
