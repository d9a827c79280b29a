// Package backends contains optional collaborators on the outbound side
// of a faultline System: sinks that receive export snapshots and adapters
// that forward events. Nothing in this package feeds back into the
// engine.
package backends

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/faultline-dev/faultline/pkg/faultline"
	"github.com/faultline-dev/faultline/pkg/formatters"
)

// FileSink writes export snapshots to a file. Writes go to a temp file in
// the same directory and are renamed into place, under a flock process
// lock, so concurrent exporters from separate processes cannot interleave
// and readers never observe a partial snapshot.
type FileSink struct {
	path      string
	formatter formatters.Formatter
	lock      *flock.Flock
}

// NewFileSink creates a sink writing to path with the given formatter.
// The parent directory is created if needed.
func NewFileSink(path string, formatter formatters.Formatter) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("file sink path cannot be empty")
	}
	if formatter == nil {
		formatter = formatters.NewJSONFormatter()
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create sink directory")
	}
	return &FileSink{
		path:      cleanPath,
		formatter: formatter,
		lock:      flock.New(cleanPath + ".lock"),
	}, nil
}

// Path returns the destination path.
func (fs *FileSink) Path() string { return fs.path }

// Write encodes the snapshot and replaces the destination file with it.
func (fs *FileSink) Write(snap faultline.Snapshot) error {
	data, err := fs.formatter.Format(snap)
	if err != nil {
		return err
	}

	if err := fs.lock.Lock(); err != nil {
		return errors.Wrap(err, "acquire sink lock")
	}
	defer func() {
		_ = fs.lock.Unlock()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".faultline-export-*")
	if err != nil {
		return errors.Wrap(err, "create temp export file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "write export")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "close export file")
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "publish export file")
	}
	return nil
}

// Read loads and decodes the current snapshot from the destination file.
func (fs *FileSink) Read() (faultline.Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return faultline.Snapshot{}, errors.Wrap(err, "read export file")
	}
	return fs.formatter.Parse(data)
}
