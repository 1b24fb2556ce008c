// Package changefeed is a small in-process pub/sub used to tell dependent
// views that rows in a table changed. Subscribers get {event, table} pairs
// and re-fetch; no payload diffing.
package changefeed

import "sync"

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event identifies a change: which table, what kind of mutation.
type Event struct {
	Table string
	Kind  EventKind
}

// Subscription receives events for the tables it was opened on. Cancel must
// be called on teardown; afterwards C is closed.
type Subscription struct {
	C chan Event

	feed   *Feed
	tables map[string]bool
	once   sync.Once
}

// Cancel detaches the subscription from the feed and closes C.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.feed.remove(s)
		close(s.C)
	})
}

// Feed fans mutation events out to table subscriptions.
type Feed struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func New() *Feed {
	return &Feed{subs: make(map[*Subscription]struct{})}
}

// Subscribe opens a subscription for the given tables. The channel is
// buffered; a slow consumer drops events rather than blocking writers, which
// is fine because consumers re-fetch the full view on any event.
func (f *Feed) Subscribe(tables ...string) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, 64),
		feed:   f,
		tables: make(map[string]bool, len(tables)),
	}
	for _, t := range tables {
		sub.tables[t] = true
	}

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

// Publish delivers the event to every subscription watching the table.
func (f *Feed) Publish(table string, kind EventKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		if !sub.tables[table] {
			continue
		}
		select {
		case sub.C <- Event{Table: table, Kind: kind}:
		default:
		}
	}
}

func (f *Feed) remove(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
}
