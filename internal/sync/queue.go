package sync

import (
	"encoding/json"
	"fmt"
	gosync "sync"
)

// Queue is the durable FIFO of pending actions. Every mutation persists
// through the store before it is visible, so a crash or restart never loses
// an accepted action.
type Queue struct {
	mu      gosync.Mutex
	store   Store
	actions []Action
}

func NewQueue(store Store) (*Queue, error) {
	q := &Queue{store: store}

	data, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &q.actions); err != nil {
			return nil, fmt.Errorf("decode queue: %w", err)
		}
	}
	return q, nil
}

func (q *Queue) Append(action Action) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := append(append([]Action{}, q.actions...), action)
	if err := q.persist(next); err != nil {
		return err
	}
	q.actions = next
	return nil
}

// Snapshot returns a copy of the pending actions in FIFO order.
func (q *Queue) Snapshot() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Action, len(q.actions))
	copy(out, q.actions)
	return out
}

// Remove deletes the actions with the given ids, persisting first. The drain
// commits its outcomes through here so an action appended after the drain's
// snapshot is never touched — it simply isn't in the id set.
func (q *Queue) Remove(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	next := make([]Action, 0, len(q.actions))
	for _, a := range q.actions {
		if _, ok := drop[a.ID]; !ok {
			next = append(next, a)
		}
	}
	if err := q.persist(next); err != nil {
		return err
	}
	q.actions = next
	return nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

func (q *Queue) persist(actions []Action) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return err
	}
	return q.store.Save(data)
}
