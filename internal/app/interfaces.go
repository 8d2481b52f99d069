package app

import (
	"context"

	"github.com/supchaser/aria2bot/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// RPCCaller performs one JSON-RPC call against a daemon and decodes the
// result into result.
type RPCCaller interface {
	Call(ctx context.Context, method string, params []any, result any) error
}

type DownloadClient interface {
	GetTasks(ctx context.Context) ([]*models.Status, error)
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	PurgeDownloaded(ctx context.Context) error
	AddURIs(ctx context.Context, uris []string, dir string) models.AddURIsResult
	AddTorrent(ctx context.Context, data []byte, dir string) (string, error)
}

// Notifier edits previously sent chat messages.
type Notifier interface {
	EditListMarkup(ctx context.Context, target models.Target, keyboard models.Keyboard) error
	EditTaskMessage(ctx context.Context, target models.Target, text string, keyboard models.Keyboard) error
}

// FileFetcher downloads an attachment previously uploaded to the chat platform.
type FileFetcher interface {
	FetchFile(ctx context.Context, fileID string) ([]byte, error)
}

// StatusReader exposes the cached state of every backend to the status API.
type StatusReader interface {
	Servers() []models.ServerResponse
	Tasks(name string) ([]models.TaskResponse, error)
	Task(name, id string) (models.TaskResponse, error)
}
