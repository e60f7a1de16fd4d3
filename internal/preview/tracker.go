package preview

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Ticket identifies one preview request for a key (a chat user or a web
// session).
type Ticket struct {
	Key string
	ID  string
}

// Tracker remembers the latest ticket per key. Entries expire after the TTL,
// after which any outstanding ticket for that key counts as current again.
type Tracker struct {
	latest *cache.Cache
}

func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Tracker{latest: cache.New(ttl, 2*ttl)}
}

// Begin issues a ticket that supersedes every earlier ticket for key.
func (t *Tracker) Begin(key string) Ticket {
	tk := Ticket{Key: key, ID: uuid.NewString()}
	if key != "" {
		t.latest.SetDefault(key, tk.ID)
	}
	return tk
}

// Current reports whether no newer ticket was issued for the same key.
func (t *Tracker) Current(tk Ticket) bool {
	if tk.Key == "" {
		return true
	}
	v, ok := t.latest.Get(tk.Key)
	if !ok {
		return true
	}
	id, _ := v.(string)
	return id == tk.ID
}

// Invalidate makes every outstanding ticket for key stale.
func (t *Tracker) Invalidate(key string) {
	t.Begin(key)
}

func (t *Tracker) Len() int {
	return t.latest.ItemCount()
}
