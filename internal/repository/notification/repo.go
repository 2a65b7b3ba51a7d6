package notification

import (
	"sync"

	"github.com/aliskhannn/notification-service/internal/model"
)

// history is the ordered notification sequence of a single user.
type history struct {
	mu    sync.Mutex
	items []model.Notification
}

// Repository keeps every user's notification history in memory.
//
// Records are owned by the repository once appended: callers receive copies and
// change a record only through UpdateStatus. Each user history is guarded by its
// own mutex, so writers for different users never contend.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*history
}

// NewRepository creates an empty notification repository.
func NewRepository() *Repository {
	return &Repository{users: make(map[string]*history)}
}

// Append adds a notification to the end of the user's history, creating the
// history if the user has none yet.
func (r *Repository) Append(userID string, n model.Notification) {
	h := r.history(userID, true)

	h.mu.Lock()
	h.items = append(h.items, n)
	h.mu.Unlock()
}

// UpdateStatus sets the status and retry count of the notification with the
// given id in the user's history.
//
// It reports whether a record was changed. Unknown users or ids and records
// already in a terminal state are left untouched.
func (r *Repository) UpdateStatus(userID, id string, status model.Status, retryCount int) bool {
	h := r.history(userID, false)
	if h == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.items {
		if h.items[i].ID != id {
			continue
		}

		if h.items[i].Status.Terminal() {
			return false
		}

		h.items[i].Status = status
		h.items[i].RetryCount = retryCount
		return true
	}

	return false
}

// Get returns a copy of a single notification.
func (r *Repository) Get(userID, id string) (model.Notification, bool) {
	h := r.history(userID, false)
	if h == nil {
		return model.Notification{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, n := range h.items {
		if n.ID == id {
			return n, true
		}
	}

	return model.Notification{}, false
}

// List returns a copy of the user's notifications in insertion order.
// Unknown users get an empty, non-nil slice.
func (r *Repository) List(userID string) []model.Notification {
	h := r.history(userID, false)
	if h == nil {
		return []model.Notification{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.Notification, len(h.items))
	copy(out, h.items)

	return out
}

func (r *Repository) history(userID string, create bool) *history {
	r.mu.RLock()
	h, ok := r.users[userID]
	r.mu.RUnlock()

	if ok || !create {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another writer may have created it between the two locks
	if h, ok = r.users[userID]; ok {
		return h
	}

	h = &history{}
	r.users[userID] = h

	return h
}
