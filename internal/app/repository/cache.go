package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/render"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	CacheExpire     = 3 * time.Second
	RefreshTimeout  = 10 * time.Second
	dispatchTimeout = 10 * time.Second
)

// TaskCache is the task snapshot of one backend plus the subscribers that
// watch it.
type TaskCache struct {
	mu          sync.RWMutex
	tasks       map[string]*models.Status
	lastRefresh time.Time
	subscribers *Subscribers

	notifier app.Notifier
	inflight sync.WaitGroup
	now      func() time.Time
}

func CreateTaskCache(subscriberTTL time.Duration, notifier app.Notifier) *TaskCache {
	return &TaskCache{
		tasks:       make(map[string]*models.Status),
		subscribers: CreateSubscribers(subscriberTTL),
		notifier:    notifier,
		now:         time.Now,
	}
}

func (c *TaskCache) Expired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.now().Sub(c.lastRefresh) > CacheExpire
}

func (c *TaskCache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastRefresh
}

func (c *TaskCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tasks)
}

// Refresh fetches a new snapshot unless the current one is still fresh.
// On failure the current snapshot is kept and the error returned.
func (c *TaskCache) Refresh(ctx context.Context, client app.DownloadClient) error {
	const funcName = "TaskCache.Refresh"

	if !c.Expired() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, RefreshTimeout)
	defer cancel()

	tasks, err := client.GetTasks(ctx)
	if err != nil {
		logger.Warn("failed to refresh tasks",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return err
	}

	c.Apply(tasks)
	return nil
}

// Apply swaps in a fetched snapshot. When it differs from the cached one the
// subscribers are notified. Detection and swap happen under one write lock.
func (c *TaskCache) Apply(tasks []*models.Status) bool {
	const funcName = "TaskCache.Apply"

	next := indexTasks(tasks)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastRefresh = c.now()
	if Equivalent(c.tasks, next) {
		return false
	}

	c.tasks = next
	logger.Debug("task snapshot changed",
		zap.String("function", funcName),
		zap.Int("tasks", len(next)),
	)
	c.notifySubscribers()
	return true
}

func indexTasks(tasks []*models.Status) map[string]*models.Status {
	index := make(map[string]*models.Status, len(tasks))
	for _, task := range tasks {
		if task == nil || task.ID == "" {
			continue
		}
		index[task.ID] = task
	}
	return index
}

// Equivalent reports whether two snapshots render the same progress. Name
// and dir are ignored; they do not change once a task exists.
func Equivalent(a, b map[string]*models.Status) bool {
	if len(a) != len(b) {
		return false
	}
	for id, x := range a {
		y, ok := b[id]
		if !ok || !sameProgress(x, y) {
			return false
		}
	}
	return true
}

func sameProgress(x, y *models.Status) bool {
	return x.State == y.State &&
		x.CompletedLength == y.CompletedLength &&
		x.TotalLength == y.TotalLength &&
		x.DownloadSpeed == y.DownloadSpeed &&
		x.UploadSpeed == y.UploadSpeed &&
		x.Connections == y.Connections &&
		x.NumSeeders == y.NumSeeders
}

// Snapshot returns the cached tasks in list order.
func (c *TaskCache) Snapshot() []*models.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sortedLocked()
}

func (c *TaskCache) sortedLocked() []*models.Status {
	tasks := make([]*models.Status, 0, len(c.tasks))
	for _, task := range c.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		x, y := tasks[i], tasks[j]
		if x.State != y.State {
			return x.State < y.State
		}
		if xp, yp := x.ProgressKey(), y.ProgressKey(); xp != yp {
			return xp < yp
		}
		if x.Name != y.Name {
			return x.Name < y.Name
		}
		return x.ID < y.ID
	})
	return tasks
}

func (c *TaskCache) FmtTasks() []models.TaskLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.fmtTasksLocked()
}

func (c *TaskCache) fmtTasksLocked() []models.TaskLine {
	tasks := c.sortedLocked()
	lines := make([]models.TaskLine, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, models.TaskLine{Text: render.Brief(task), ID: task.ID})
	}
	return lines
}

// Task returns the cached status of one task.
func (c *TaskCache) Task(id string) (*models.Status, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	task, ok := c.tasks[id]
	return task, ok
}

func (c *TaskCache) FmtTask(id string) (string, *models.Status, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	task, ok := c.tasks[id]
	if !ok {
		return "", nil, false
	}
	return render.Detailed(task), task, true
}

func (c *TaskCache) AddListSubscriber(target models.Target) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscribers.addList(target, c.now())
}

func (c *TaskCache) AddTaskSubscriber(id string, target models.Target) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscribers.addTask(id, target, c.now())
}

// HasSubscriber does not look at expiry; stale entries are purged on the
// next notification.
func (c *TaskCache) HasSubscriber() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.subscribers.present()
}

// NotifySubscribers pushes the current snapshot to every live subscriber.
func (c *TaskCache) NotifySubscribers() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notifySubscribers()
}

// WaitNotifications blocks until every dispatched edit has returned.
func (c *TaskCache) WaitNotifications() {
	c.inflight.Wait()
}

func (c *TaskCache) notifySubscribers() {
	now := c.now()
	c.subscribers.purge(now)

	if listTargets := c.subscribers.list.live(now); len(listTargets) > 0 {
		keyboard := render.TasksKeyboard(c.fmtTasksLocked())
		for _, target := range listTargets {
			c.dispatch("list", target, func(ctx context.Context) error {
				return c.notifier.EditListMarkup(ctx, target, keyboard)
			})
		}
	}

	for id, queue := range c.subscribers.tasks {
		task, ok := c.tasks[id]
		if !ok {
			continue
		}
		targets := queue.live(now)
		if len(targets) == 0 {
			continue
		}
		text := render.Detailed(task)
		keyboard := render.TaskKeyboard(id, task.State)
		for _, target := range targets {
			c.dispatch(id, target, func(ctx context.Context) error {
				return c.notifier.EditTaskMessage(ctx, target, text, keyboard)
			})
		}
	}
}

func (c *TaskCache) dispatch(scope string, target models.Target, edit func(ctx context.Context) error) {
	const funcName = "TaskCache.dispatch"

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := edit(ctx); err != nil && !errors.Is(err, errs.ErrMessageNotModified) {
			logger.Warn("failed to edit message",
				zap.String("function", funcName),
				zap.String("scope", scope),
				zap.Int64("chat_id", target.ChatID),
				zap.Int("message_id", target.MessageID),
				zap.Error(err),
			)
		}
	}()
}
