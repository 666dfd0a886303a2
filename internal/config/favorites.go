package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/airwav/airwav/internal/platform"
)

// Favorites persists the set of starred station UUIDs between runs. Saving
// runs off the event loop, so the set guards itself.
type Favorites struct {
	mu    sync.Mutex
	uuids map[string]struct{}
	path  string
}

// LoadFavorites reads the favorites file under the user config directory. A
// missing file yields an empty set.
func LoadFavorites() (*Favorites, error) {
	dir, err := platform.ConfigDir()
	if err != nil {
		return &Favorites{uuids: map[string]struct{}{}}, err
	}
	return LoadFavoritesFrom(filepath.Join(dir, DefaultFavoritesName))
}

// LoadFavoritesFrom reads favorites from an explicit path
func LoadFavoritesFrom(path string) (*Favorites, error) {
	f := &Favorites{
		uuids: make(map[string]struct{}),
		path:  path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read favorites: %w", err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return f, fmt.Errorf("parse favorites %s: %w", path, err)
	}
	for _, id := range list {
		if id != "" {
			f.uuids[id] = struct{}{}
		}
	}
	return f, nil
}

// Contains reports whether the station UUID is a favorite
func (f *Favorites) Contains(uuid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.uuids[uuid]
	return ok
}

// Toggle flips the favorite flag for the UUID and returns the new value
func (f *Favorites) Toggle(uuid string) bool {
	if uuid == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.uuids[uuid]; ok {
		delete(f.uuids, uuid)
		return false
	}
	f.uuids[uuid] = struct{}{}
	return true
}

// Len returns the number of favorites
func (f *Favorites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uuids)
}

// Save writes the favorites back to disk as a sorted JSON array. The set is
// snapshotted under the lock; the write itself runs unlocked so toggles are
// never held up by disk I/O.
func (f *Favorites) Save() error {
	if f.path == "" {
		return errors.New("favorites have no backing file")
	}

	f.mu.Lock()
	list := make([]string, 0, len(f.uuids))
	for id := range f.uuids {
		list = append(list, id)
	}
	f.mu.Unlock()
	sort.Strings(list)

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(f.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
