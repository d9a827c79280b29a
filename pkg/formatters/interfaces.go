// Package formatters serializes faultline export snapshots for hand-off
// to files, pipes, or external analytics.
package formatters

import "github.com/faultline-dev/faultline/pkg/faultline"

// Formatter encodes an export snapshot to bytes.
type Formatter interface {
	// Format encodes the snapshot.
	Format(snap faultline.Snapshot) ([]byte, error)
	// Parse decodes bytes produced by Format back into a snapshot.
	Parse(data []byte) (faultline.Snapshot, error)
	// Name identifies the format ("json", "msgpack").
	Name() string
}

// ByName returns the formatter registered under name.
func ByName(name string) (Formatter, bool) {
	switch name {
	case "json":
		return NewJSONFormatter(), true
	case "msgpack":
		return NewMsgpackFormatter(), true
	}
	return nil, false
}

// Names lists the supported format names.
func Names() []string {
	return []string{"json", "msgpack"}
}
