package tasting

import "time"

// Outcome reports what a merge changed, for metrics and logging.
type Outcome struct {
	EventCreated  bool
	EntryReplaced bool
}

// Merge folds a submission into a store and returns the updated store.
//
// Events are matched by collection_handle, entries by product_id; both are
// linear scans since a store holds at most a handful of events. A matched
// entry is fully replaced in place (last write wins, no field-level merge);
// a new entry is appended. Relative order of untouched events and entries
// is preserved. A newly created event takes the submission handle as its id
// and name (unless an explicit name is supplied) and is dated with the
// current UTC day.
func Merge(store Store, sub Submission, now time.Time) (Store, Outcome) {
	now = now.UTC()
	var out Outcome

	// The input store is left untouched: the event list is copied before
	// any write, and the replace path copies the entry list too.
	events := make([]Event, len(store.Events))
	copy(events, store.Events)
	store.Events = events

	idx := -1
	for i := range store.Events {
		if store.Events[i].CollectionHandle == sub.EventHandle {
			idx = i
			break
		}
	}
	if idx == -1 {
		name := sub.EventName
		if name == "" {
			name = sub.EventHandle
		}
		store.Events = append(store.Events, Event{
			ID:               sub.EventHandle,
			Name:             name,
			Date:             now.Format("2006-01-02"),
			CollectionHandle: sub.EventHandle,
			Wines:            []WineEntry{},
		})
		idx = len(store.Events) - 1
		out.EventCreated = true
	}

	entry := WineEntry{
		ProductID: sub.Product.ProductID,
		Handle:    sub.Product.Handle,
		Title:     sub.Product.Title,
		Rating:    sub.Product.Rating,
		Note:      TruncateNote(sub.Product.Note),
		UpdatedAt: now.Format(time.RFC3339),
	}

	wines := store.Events[idx].Wines
	pos := -1
	for i := range wines {
		if wines[i].ProductID == entry.ProductID {
			pos = i
			break
		}
	}
	if pos == -1 {
		store.Events[idx].Wines = append(wines, entry)
	} else {
		wines = append([]WineEntry{}, wines...)
		wines[pos] = entry
		store.Events[idx].Wines = wines
		out.EntryReplaced = true
	}
	return store, out
}

// TruncateNote limits a note to NoteMaxLen code points.
func TruncateNote(note string) string {
	runes := []rune(note)
	if len(runes) <= NoteMaxLen {
		return note
	}
	return string(runes[:NoteMaxLen])
}
