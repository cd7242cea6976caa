/*
Copyright © 2023 Zak Reynolds <zak.reynolds@zakjr.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FileStore keeps each collection in <dir>/<name>.json.
type FileStore struct {
	dir      string
	embedder Embedder
	newID    func() string
}

func NewFileStore(dir string, embedder Embedder) *FileStore {
	return &FileStore{
		dir:      dir,
		embedder: embedder,
		newID:    uuid.NewString,
	}
}

// DefaultDir returns $HOME/.kessler-assist/collections.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kessler-assist", "collections"), nil
}

type collectionFile struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (s *FileStore) Add(ctx context.Context, collection, text string, metadata map[string]any) (string, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", err
	}

	entry := Entry{ID: s.newID(), Text: text, Vector: vector, Metadata: metadata}
	err = s.update(collection, func(c *collectionFile) error {
		c.Entries = append(c.Entries, entry)
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Debug().Str("collection", collection).Str("id", entry.ID).Msg("added entry")
	return entry.ID, nil
}

func (s *FileStore) Query(ctx context.Context, collection, text string, opts QueryOptions) ([]Match, error) {
	path, err := s.path(collection)
	if err != nil {
		return nil, err
	}
	c, err := readCollection(path, collection)
	if err != nil {
		return nil, err
	}
	if len(c.Entries) == 0 {
		return []Match{}, nil
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return rank(c.Entries, vector, opts), nil
}

func (s *FileStore) Remove(ctx context.Context, collection, id string) error {
	return s.update(collection, func(c *collectionFile) error {
		for i, e := range c.Entries {
			if e.ID == id {
				c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %q in collection %q", ErrNotFound, id, collection)
	})
}

// update runs fn on the collection under an exclusive file lock and writes
// the result back.
func (s *FileStore) update(collection string, fn func(*collectionFile) error) error {
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("could not lock collection %q: %w", collection, err)
	}
	defer lock.Unlock()

	c, err := readCollection(path, collection)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *FileStore) path(collection string) (string, error) {
	if collection == "" || collection == "." || collection == ".." ||
		strings.ContainsAny(collection, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return filepath.Join(s.dir, collection+".json"), nil
}

func readCollection(path, name string) (*collectionFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &collectionFile{Name: name}, nil
	}
	if err != nil {
		return nil, err
	}
	c := &collectionFile{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("could not parse collection %q: %w", name, err)
	}
	return c, nil
}

func rank(entries []Entry, vector []float32, opts QueryOptions) []Match {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		score := cosine(vector, e.Vector)
		if score < opts.Threshold {
			continue
		}
		e.Vector = nil
		matches = append(matches, Match{Entry: e, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// cosine is 0 for mismatched or zero vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
