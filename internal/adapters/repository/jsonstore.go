package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultFileMode = 0o644

// JSONStore writes <tag>.json and <tag>-details.json under a root directory.
// Each file is written to a temporary sibling and renamed over the target.
// The pair is not updated atomically as a whole.
type JSONStore struct {
	root   string
	mode   os.FileMode
	logger logger.Logger
}

// NewJSONStore creates a store rooted at dir.
func NewJSONStore(dir string, opts ...Option) *JSONStore {
	s := &JSONStore{
		root:   dir,
		mode:   defaultFileMode,
		logger: logger.Get().Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummaryPath returns the path of the summary snapshot for tag.
func (s *JSONStore) SummaryPath(tag string) string {
	return filepath.Join(s.root, tag+".json")
}

// DetailsPath returns the path of the detail snapshot for tag.
func (s *JSONStore) DetailsPath(tag string) string {
	return filepath.Join(s.root, tag+"-details.json")
}

// Persist implements Store.
func (s *JSONStore) Persist(ctx context.Context, tag string, entrants []model.Entrant, details map[string]model.Entrant) error {
	if err := validTag(tag); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	summary := make([]model.Summary, 0, len(entrants))
	for i := range entrants {
		summary = append(summary, entrants[i].Summary())
	}
	if details == nil {
		details = map[string]model.Entrant{}
	}

	if err := s.writeJSON(s.SummaryPath(tag), summary); err != nil {
		metrics.RecordSnapshotError()
		return err
	}
	metrics.RecordSnapshotWrite("summary")

	if err := s.writeJSON(s.DetailsPath(tag), details); err != nil {
		metrics.RecordSnapshotError()
		return err
	}
	metrics.RecordSnapshotWrite("details")

	s.logger.Debug(ctx, "snapshot persisted",
		logger.String("tag", tag),
		logger.Int("entrants", len(summary)),
	)
	return nil
}

// Summary implements Store.
func (s *JSONStore) Summary(_ context.Context, tag string) ([]model.Summary, error) {
	if err := validTag(tag); err != nil {
		return nil, err
	}
	var out []model.Summary
	if err := readJSON(s.SummaryPath(tag), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Details implements Store.
func (s *JSONStore) Details(_ context.Context, tag string) (map[string]model.Entrant, error) {
	if err := validTag(tag); err != nil {
		return nil, err
	}
	out := map[string]model.Entrant{}
	if err := readJSON(s.DetailsPath(tag), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSONStore) writeJSON(target string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, filepath.Base(target), err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Chmod(s.mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func validTag(tag string) error {
	if tag == "" || tag == "." || tag == ".." || strings.ContainsAny(tag, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return nil
}
