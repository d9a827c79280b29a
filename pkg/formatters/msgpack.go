package formatters

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/faultline-dev/faultline/pkg/faultline"
)

// MsgpackFormatter encodes snapshots as MessagePack, for hand-offs where
// payload size matters more than readability.
type MsgpackFormatter struct{}

// NewMsgpackFormatter creates a MessagePack formatter.
func NewMsgpackFormatter() *MsgpackFormatter {
	return &MsgpackFormatter{}
}

// Name implements Formatter.
func (f *MsgpackFormatter) Name() string { return "msgpack" }

// Format implements Formatter.
func (f *MsgpackFormatter) Format(snap faultline.Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot msgpack")
	}
	return data, nil
}

// Parse implements Formatter.
func (f *MsgpackFormatter) Parse(data []byte) (faultline.Snapshot, error) {
	var snap faultline.Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return faultline.Snapshot{}, errors.Wrap(err, "decode snapshot msgpack")
	}
	return snap, nil
}
