// Package jsonfile stores manual updates in a single JSON document on disk.
//
// Every Load reads the whole file and every Append rewrites it. Writes go to a
// temporary file in the same directory which is synced and then renamed over
// the target, so a crash never leaves a half-written document behind.
//
// The store does not lock. Two processes (or goroutines) appending at the same
// time can each read the old state and the later rename wins, dropping the
// other update. Callers that need multi-writer safety must serialise Append
// themselves or use the postgres store.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/observability/metrics"
	"climate-dashboard/internal/repository"
)

const driverName = "jsonfile"

// DefaultPath is the file used when no path is configured.
const DefaultPath = "company_updates.json"

// Store is a file-backed repository.UpdateRepository.
type Store struct {
	path string

	// replace moves the finished temp file over path. Tests swap it to
	// simulate a crash before the replace happens.
	replace func(oldpath, newpath string) error
}

var _ repository.UpdateRepository = (*Store)(nil)

// New returns a Store for path. The file is created on the first Append.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, replace: os.Rename}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// record is the on-disk shape of one update. Older files used "entity" and
// "category" instead of "company" and "type"; both spellings are read.
type record struct {
	Company     string `json:"company"`
	Entity      string `json:"entity"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (r record) toUpdate(key string) entity.ManualUpdate {
	company := r.Company
	if company == "" {
		company = r.Entity
	}
	if company == "" {
		company = key
	}
	typ := r.Type
	if typ == "" {
		typ = r.Category
	}
	return entity.ManualUpdate{
		Company:     company,
		Category:    entity.Category(typ),
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
	}
}

// Load reads the full state. A missing file is an empty store.
func (s *Store) Load(_ context.Context) (map[string][]entity.ManualUpdate, error) {
	start := time.Now()
	state, err := s.read()
	metrics.RecordStoreOperation(driverName, "load", time.Since(start), err)
	return state, err
}

// Append adds u to the end of its company's sequence and rewrites the file.
// See the package documentation for the concurrency limitation.
func (s *Store) Append(_ context.Context, u entity.ManualUpdate) error {
	start := time.Now()
	err := s.append(u)
	metrics.RecordStoreOperation(driverName, "append", time.Since(start), err)
	return err
}

func (s *Store) append(u entity.ManualUpdate) error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state[u.Company] = append(state[u.Company], u)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode updates: %w", err)
	}
	return s.writeAtomic(data)
}

func (s *Store) read() (map[string][]entity.ManualUpdate, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]entity.ManualUpdate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return decode(data)
}

// decode accepts the keyed document and the legacy flat list of records.
func decode(data []byte) (map[string][]entity.ManualUpdate, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", entity.ErrCorruptState)
	}

	state := make(map[string][]entity.ManualUpdate)

	if trimmed[0] == '[' {
		var list []record
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrCorruptState, err)
		}
		for _, r := range list {
			u := r.toUpdate("")
			if u.Company == "" {
				return nil, fmt.Errorf("%w: record without company", entity.ErrCorruptState)
			}
			state[u.Company] = append(state[u.Company], u)
		}
		return state, nil
	}

	var keyed map[string][]record
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrCorruptState, err)
	}
	if keyed == nil {
		return nil, fmt.Errorf("%w: null document", entity.ErrCorruptState)
	}
	for key, records := range keyed {
		updates := make([]entity.ManualUpdate, 0, len(records))
		for _, r := range records {
			updates = append(updates, r.toUpdate(key))
		}
		state[key] = updates
	}
	return state, nil
}

// writeAtomic writes data to a sibling temp file, syncs it and replaces the
// target. On any failure the temp file is removed and the target is untouched.
func (s *Store) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = s.replace(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir) // #nosec G304 -- directory of the configured store path
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
