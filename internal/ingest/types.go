package ingest

import "github.com/bytedance/sonic"

// PrimaryRecord is one message from the primary platform's export.
type PrimaryRecord struct {
	SenderName  string  `json:"sender_name"`
	Content     *string `json:"content"` // absent for photos, stickers, calls
	TimestampMS int64   `json:"timestamp_ms"`
}

// SecondaryRecord is one message from the secondary platform's export.
type SecondaryRecord struct {
	SenderName string  `json:"senderName"`
	Text       *string `json:"text"`
	Timestamp  int64   `json:"timestamp"` // milliseconds since epoch
}

// UnmarshalJSON decodes text with decodeText, so a lone surrogate escape
// reaches normalization as its three-byte encoding instead of U+FFFD.
func (r *SecondaryRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		SenderName string                 `json:"senderName"`
		Text       sonic.NoCopyRawMessage `json:"text"`
		Timestamp  int64                  `json:"timestamp"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	text, err := decodeText(raw.Text)
	if err != nil {
		return err
	}
	*r = SecondaryRecord{SenderName: raw.SenderName, Text: text, Timestamp: raw.Timestamp}
	return nil
}

// Exports holds the raw record sets of one load, before normalization.
type Exports struct {
	Primary   []PrimaryRecord
	Secondary []SecondaryRecord
}
