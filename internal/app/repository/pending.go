package repository

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

const PendingCapacity = 4096

// PendingStore correlates confirmation tokens with the request waiting for
// them. Tokens are consumed once. When full, the oldest entry is dropped.
type PendingStore[T any] struct {
	name string
	mu   sync.Mutex
	lru  *simplelru.LRU[string, T]
}

func CreatePendingStore[T any](name string, capacity int) (*PendingStore[T], error) {
	lru, err := simplelru.NewLRU[string, T](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", name, err)
	}

	return &PendingStore[T]{name: name, lru: lru}, nil
}

func newToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Put stores value under a fresh token and returns the token.
func (s *PendingStore[T]) Put(value T) string {
	const funcName = "PendingStore.Put"

	token := newToken()

	s.mu.Lock()
	evicted := s.lru.Add(token, value)
	s.mu.Unlock()

	if evicted {
		logger.Debug("pending request evicted",
			zap.String("function", funcName),
			zap.String("store", s.name),
		)
	}

	return token
}

// Take removes and returns the value stored under token.
func (s *PendingStore[T]) Take(token string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.lru.Peek(token)
	if ok {
		s.lru.Remove(token)
	}
	return value, ok
}

func (s *PendingStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lru.Len()
}
