package domain

// HistoryEntry is one item of the recall list. CreatedAt is a Unix
// millisecond timestamp and identifies the entry.
type HistoryEntry struct {
	SourceKind SourceKind `json:"sourceKind"`
	RawValue   string     `json:"rawValue"`
	Label      string     `json:"label"`
	CreatedAt  int64      `json:"createdAt"`
}

// DisplayLabel falls back to the raw value when no label was stored.
func (e HistoryEntry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.RawValue
}

// Request rebuilds the import request that produced the entry.
func (e HistoryEntry) Request() ImportRequest {
	return ImportRequest{Kind: e.SourceKind, Value: e.RawValue, Label: e.Label}
}
