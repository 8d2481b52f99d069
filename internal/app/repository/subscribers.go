package repository

import (
	"time"

	"github.com/supchaser/aria2bot/internal/app/models"
)

type subscriberEntry struct {
	target   models.Target
	expireAt time.Time
}

// expiringQueue keeps entries in creation order. All entries share one ttl,
// so expiry order equals insertion order and cleaning only trims the head.
type expiringQueue struct {
	entries []subscriberEntry
	ttl     time.Duration
}

func (q *expiringQueue) push(target models.Target, now time.Time) {
	q.entries = append(q.entries, subscriberEntry{target: target, expireAt: now.Add(q.ttl)})
}

func (q *expiringQueue) clean(now time.Time) {
	i := 0
	for i < len(q.entries) && q.entries[i].expireAt.Before(now) {
		i++
	}
	if i > 0 {
		q.entries = append(q.entries[:0:0], q.entries[i:]...)
	}
}

func (q *expiringQueue) live(now time.Time) []models.Target {
	targets := make([]models.Target, 0, len(q.entries))
	for _, entry := range q.entries {
		if !entry.expireAt.Before(now) {
			targets = append(targets, entry.target)
		}
	}
	return targets
}

func (q *expiringQueue) empty() bool {
	return len(q.entries) == 0
}

// Subscribers holds the list scope and the per-task scopes of one backend.
// The same target may be registered several times; duplicates age out.
type Subscribers struct {
	ttl   time.Duration
	list  *expiringQueue
	tasks map[string]*expiringQueue
}

func CreateSubscribers(ttl time.Duration) *Subscribers {
	return &Subscribers{
		ttl:   ttl,
		list:  &expiringQueue{ttl: ttl},
		tasks: make(map[string]*expiringQueue),
	}
}

func (s *Subscribers) addList(target models.Target, now time.Time) {
	s.list.push(target, now)
}

func (s *Subscribers) addTask(id string, target models.Target, now time.Time) {
	queue, ok := s.tasks[id]
	if !ok {
		queue = &expiringQueue{ttl: s.ttl}
		s.tasks[id] = queue
	}
	queue.push(target, now)
}

// present reports whether something is registered, expired or not.
func (s *Subscribers) present() bool {
	return !s.list.empty() || len(s.tasks) > 0
}

func (s *Subscribers) purge(now time.Time) {
	s.list.clean(now)
	for id, queue := range s.tasks {
		queue.clean(now)
		if queue.empty() {
			delete(s.tasks, id)
		}
	}
}
