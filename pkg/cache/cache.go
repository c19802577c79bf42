// Package cache remembers recently run CAD scripts so that the CLI can
// re-run the latest one without arguments.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// Entry records one script invocation.
type Entry struct {
	Script  string    `json:"script"`
	LastRun time.Time `json:"last_run"`
}

// Dir returns the directory where entries are stored, honoring
// XDG_DATA_HOME.
func Dir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "burl", "recent"), nil
}

// key derives a stable file name for a script from its absolute path.
func key(script string) (string, error) {
	abs, err := filepath.Abs(script)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:]), nil
}

// Record notes that a script was run now.
func Record(script string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	abs, err := filepath.Abs(script)
	if err != nil {
		return err
	}
	k, err := key(script)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Entry{Script: abs, LastRun: time.Now().UTC()})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, k+".json"), data, 0o644)
}

// MostRecent returns the entry with the newest run time.
func MostRecent() (Entry, error) {
	dir, err := Dir()
	if err != nil {
		return Entry{}, err
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		return Entry{}, err
	}
	var latest Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		if e.LastRun.After(latest.LastRun) {
			latest = e
		}
	}
	if latest.Script == "" {
		return Entry{}, fmt.Errorf("no scripts on record in %s", dir)
	}
	return latest, nil
}
