package formatters

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/faultline-dev/faultline/pkg/faultline"
)

// JSONFormatter encodes snapshots as JSON.
type JSONFormatter struct {
	// Indent pretty-prints with the given indent string when non-empty.
	Indent string
}

// NewJSONFormatter creates a compact JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name implements Formatter.
func (f *JSONFormatter) Name() string { return "json" }

// Format implements Formatter.
func (f *JSONFormatter) Format(snap faultline.Snapshot) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent != "" {
		data, err = json.MarshalIndent(snap, "", f.Indent)
	} else {
		data, err = json.Marshal(snap)
	}
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot json")
	}
	return append(data, '\n'), nil
}

// Parse implements Formatter.
func (f *JSONFormatter) Parse(data []byte) (faultline.Snapshot, error) {
	var snap faultline.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return faultline.Snapshot{}, errors.Wrap(err, "decode snapshot json")
	}
	return snap, nil
}
