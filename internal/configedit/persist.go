package configedit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"

	"github.com/codex-tools/codexcfg/internal/conf"
	"github.com/codex-tools/codexcfg/internal/tomldoc"
)

const lockFileName = conf.ConfigTOMLFile + ".lock"

// Editor persists overrides into HOME/config.toml.
type Editor struct {
	Home string
	// Lock holds an exclusive advisory lock on HOME/config.toml.lock for the
	// duration of each persist call.
	Lock   bool
	Logger *slog.Logger
}

// Path returns the location of config.toml.
func (e *Editor) Path() string {
	return filepath.Join(e.Home, conf.ConfigTOMLFile)
}

// Persist applies overrides in order under the effective profile and
// atomically replaces config.toml. profile selects a profile explicitly;
// when nil the top-level profile key of the file is used. On error the file
// is left as it was.
func (e *Editor) Persist(profile *string, overrides ...Override) error {
	logger := e.logger()
	path := e.Path()

	if e.Lock {
		if err := os.MkdirAll(e.Home, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", e.Home, err)
		}
		unlock, err := lockFile(filepath.Join(e.Home, lockFileName))
		if err != nil {
			return err
		}
		defer unlock()
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	name, hasProfile := resolveProfile(doc, profile)
	if hasProfile {
		logger.Debug("writing overrides under profile", "profile", name, "path", path)
	}

	for _, o := range overrides {
		if len(o.Segments) == 0 {
			continue
		}
		segments := o.target(name, hasProfile)
		logger.Debug("applying override", "key", segments, "value", o.Value)
		if err := applyOverride(doc, segments, o.Value); err != nil {
			return fmt.Errorf("failed to apply override %q: %w", segments, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Format(&buf); err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	if err := os.MkdirAll(e.Home, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", e.Home, err)
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}

	logger.Debug("persisted config overrides", "path", path, "count", len(overrides))
	return nil
}

func (e *Editor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// loadDocument reads and parses path. A missing file is an empty document.
func loadDocument(path string) (*tomldoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tomldoc.New(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := tomldoc.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// writeAtomic stages data in a temporary file next to path and renames it
// over path. The temporary file is removed when any step fails.
func writeAtomic(path string, data []byte) error {
	if err := atomicfile.WriteData(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist %s: %w", path, err)
	}
	return nil
}
