package aria2

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries = 3
	retryDelay = 100 * time.Millisecond
	// page size for tellWaiting / tellStopped
	listLimit = 1000
)

// Client is the daemon surface used by the bot. Add operations are retried,
// everything else is attempted once.
type Client struct {
	caller     app.RPCCaller
	maxRetries int
	retryDelay time.Duration
}

var _ app.DownloadClient = (*Client)(nil)

func CreateClient(caller app.RPCCaller) *Client {
	return &Client{
		caller:     caller,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// GetTasks returns active, then waiting, then stopped tasks. Any failing
// sub-query fails the whole call.
func (c *Client) GetTasks(ctx context.Context) ([]*models.Status, error) {
	const funcName = "Client.GetTasks"

	var active, waiting, stopped []wireStatus

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.caller.Call(gctx, "aria2.tellActive", []any{statusKeys}, &active)
	})
	g.Go(func() error {
		return c.caller.Call(gctx, "aria2.tellWaiting", []any{0, listLimit, statusKeys}, &waiting)
	})
	g.Go(func() error {
		return c.caller.Call(gctx, "aria2.tellStopped", []any{0, listLimit, statusKeys}, &stopped)
	})
	if err := g.Wait(); err != nil {
		logger.Debug("failed to list tasks",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	tasks := make([]*models.Status, 0, len(active)+len(waiting)+len(stopped))
	for _, group := range [][]wireStatus{active, waiting, stopped} {
		for i := range group {
			if group[i].GID == "" {
				continue
			}
			tasks = append(tasks, group[i].toModel())
		}
	}

	return tasks, nil
}

func (c *Client) Pause(ctx context.Context, id string) error {
	return c.caller.Call(ctx, "aria2.pause", []any{id}, nil)
}

func (c *Client) Resume(ctx context.Context, id string) error {
	return c.caller.Call(ctx, "aria2.unpause", []any{id}, nil)
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.caller.Call(ctx, "aria2.remove", []any{id}, nil)
}

func (c *Client) PurgeDownloaded(ctx context.Context) error {
	return c.caller.Call(ctx, "aria2.purgeDownloadResult", nil, nil)
}

// AddURIs adds each uri as its own task, in order. The first uri that still
// fails after all attempts stops the loop; ids added before it are returned
// alongside the error.
func (c *Client) AddURIs(ctx context.Context, uris []string, dir string) models.AddURIsResult {
	const funcName = "Client.AddURIs"

	result := models.AddURIsResult{IDs: make([]string, 0, len(uris))}
	for _, uri := range uris {
		var gid string
		err := c.withRetry(ctx, funcName, uri, func() error {
			return c.caller.Call(ctx, "aria2.addUri", withOptions([]any{[]string{uri}}, dir), &gid)
		})
		if err != nil {
			result.Err = err
			return result
		}
		result.IDs = append(result.IDs, gid)
	}

	return result
}

func (c *Client) AddTorrent(ctx context.Context, data []byte, dir string) (string, error) {
	const funcName = "Client.AddTorrent"

	encoded := base64.StdEncoding.EncodeToString(data)
	var gid string
	err := c.withRetry(ctx, funcName, "torrent", func() error {
		return c.caller.Call(ctx, "aria2.addTorrent", withOptions([]any{encoded, []string{}}, dir), &gid)
	})
	if err != nil {
		return "", err
	}

	return gid, nil
}

func (c *Client) withRetry(ctx context.Context, funcName, subject string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Warn("add attempt failed",
			zap.String("function", funcName),
			zap.String("subject", subject),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxRetries),
			zap.Error(err),
		)

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	return lastErr
}

func withOptions(params []any, dir string) []any {
	if dir == "" {
		return params
	}
	return append(params, map[string]string{"dir": dir})
}
