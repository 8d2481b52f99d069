package usecase

import (
	"context"
	"time"

	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/repository"
	"github.com/supchaser/aria2bot/internal/config"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

const RefreshInterval = time.Second

// ServerState bundles everything the bot keeps for one aria2 backend. Its
// refresh loop runs from creation until Close.
type ServerState struct {
	Name     string
	Client   app.DownloadClient
	Cache    *repository.TaskCache
	Download config.DownloadConfig

	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

type fetchResult struct {
	tasks []*models.Status
	err   error
}

func CreateServerState(name string, client app.DownloadClient, cache *repository.TaskCache, download config.DownloadConfig, interval time.Duration) *ServerState {
	ctx, cancel := context.WithCancel(context.Background())
	s := &ServerState{
		Name:     name,
		Client:   client,
		Cache:    cache,
		Download: download,
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go s.refreshLoop(ctx)

	return s
}

// Refresh updates the cache for a user command, skipping the rpc call while
// the snapshot is still fresh.
func (s *ServerState) Refresh(ctx context.Context) error {
	return s.Cache.Refresh(ctx, s.Client)
}

// Close stops the refresh loop. Calls already sent to the daemon are left
// to finish; their results are dropped.
func (s *ServerState) Close() {
	s.cancel()
}

// Done is closed once the refresh loop has exited.
func (s *ServerState) Done() <-chan struct{} {
	return s.done
}

func (s *ServerState) refreshLoop(ctx context.Context) {
	const funcName = "ServerState.refreshLoop"
	logger.Info("refresh loop started",
		zap.String("function", funcName),
		zap.String("server", s.Name),
		zap.Duration("interval", s.interval),
	)

	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("refresh loop stopped",
				zap.String("function", funcName),
				zap.String("server", s.Name),
			)
			return
		case <-ticker.C:
			if !s.refreshOnce(ctx) {
				return
			}
		}
	}
}

// refreshOnce polls the daemon when someone is watching. It returns false
// when the loop was cancelled while waiting for the daemon.
func (s *ServerState) refreshOnce(ctx context.Context) bool {
	const funcName = "ServerState.refreshOnce"

	if !s.Cache.HasSubscriber() {
		return true
	}

	results := make(chan fetchResult, 1)
	go func() {
		fetchCtx, cancel := context.WithTimeout(context.Background(), repository.RefreshTimeout)
		defer cancel()

		tasks, err := s.Client.GetTasks(fetchCtx)
		results <- fetchResult{tasks: tasks, err: err}
	}()

	select {
	case <-ctx.Done():
		return false
	case res := <-results:
		if ctx.Err() != nil {
			return false
		}
		if res.err != nil {
			logger.Debug("background refresh failed",
				zap.String("function", funcName),
				zap.String("server", s.Name),
				zap.Error(res.err),
			)
			return true
		}

		if s.Cache.Apply(res.tasks) {
			logger.Debug("subscribers notified",
				zap.String("function", funcName),
				zap.String("server", s.Name),
			)
		}
		return true
	}
}
