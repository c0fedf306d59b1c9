// Package tasting contains the persisted tasting document model and the
// merge rules applied when a customer submits a note.
package tasting

import "encoding/json"

// Metafield coordinates on the customer record. The whole store lives in a
// single JSON metafield under this namespace/key pair.
const (
	MetafieldNamespace = "tastings"
	MetafieldKey       = "journal"
)

// NoteMaxLen caps the stored note length in Unicode code points.
const NoteMaxLen = 2000

// Store is the full document persisted per customer.
type Store struct {
	Events []Event `json:"events"`
}

// Event groups the wine entries a customer rated during one tasting.
// CollectionHandle is the unique key within a store; ID mirrors it.
type Event struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Date             string      `json:"date"`
	CollectionHandle string      `json:"collection_handle"`
	Wines            []WineEntry `json:"wines"`
}

// WineEntry is one product's note within an event, keyed by ProductID.
// Rating is nil when the customer supplied none (or a non-numeric value).
type WineEntry struct {
	ProductID int64    `json:"product_id"`
	Handle    string   `json:"handle"`
	Title     string   `json:"title"`
	Rating    *float64 `json:"rating"`
	Note      string   `json:"note"`
	UpdatedAt string   `json:"updated_at"`
}

// Submission is a validated inbound note, decoupled from the wire payload.
type Submission struct {
	EventHandle string
	EventName   string
	Product     ProductNote
}

// ProductNote carries the per-product fields of a submission.
type ProductNote struct {
	ProductID int64
	Handle    string
	Title     string
	Rating    *float64
	Note      string
}

// EmptyStore returns a fresh store with a non-nil event list so it
// serializes as {"events":[]}.
func EmptyStore() Store {
	return Store{Events: []Event{}}
}

// ParseStore decodes a stored document. A missing, empty, or unparsable
// document yields the empty store and false; recovery is silent by policy,
// the caller decides whether to log it.
func ParseStore(raw []byte) (Store, bool) {
	if len(raw) == 0 {
		return EmptyStore(), false
	}
	var s Store
	if err := json.Unmarshal(raw, &s); err != nil {
		return EmptyStore(), false
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	return s, true
}
