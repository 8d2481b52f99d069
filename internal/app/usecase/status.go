package usecase

import (
	"time"

	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/utils/errs"
)

// StatusUsecase reads the cached snapshots. It never calls a daemon.
type StatusUsecase struct {
	router *Router
}

var _ app.StatusReader = (*StatusUsecase)(nil)

func CreateStatusUsecase(router *Router) *StatusUsecase {
	return &StatusUsecase{router: router}
}

func (u *StatusUsecase) Servers() []models.ServerResponse {
	servers := u.router.Servers()
	response := make([]models.ServerResponse, 0, len(servers))
	for _, server := range servers {
		var lastRefresh string
		if ts := server.Cache.LastRefresh(); !ts.IsZero() {
			lastRefresh = ts.UTC().Format(time.RFC3339)
		}
		response = append(response, models.ServerResponse{
			Name:        server.Name,
			TasksCount:  server.Cache.Len(),
			Subscribed:  server.Cache.HasSubscriber(),
			LastRefresh: lastRefresh,
		})
	}
	return response
}

func (u *StatusUsecase) Tasks(name string) ([]models.TaskResponse, error) {
	server, ok := u.router.Server(name)
	if !ok {
		return nil, errs.ErrServerNotFound
	}

	snapshot := server.Cache.Snapshot()
	response := make([]models.TaskResponse, 0, len(snapshot))
	for _, s := range snapshot {
		response = append(response, taskResponse(s))
	}
	return response, nil
}

func (u *StatusUsecase) Task(name, id string) (models.TaskResponse, error) {
	server, ok := u.router.Server(name)
	if !ok {
		return models.TaskResponse{}, errs.ErrServerNotFound
	}

	task, ok := server.Cache.Task(id)
	if !ok {
		return models.TaskResponse{}, errs.ErrTaskNotFound
	}
	return taskResponse(task), nil
}

func taskResponse(s *models.Status) models.TaskResponse {
	return models.TaskResponse{
		ID:       s.ID,
		Name:     s.Name,
		Status:   s.State.String(),
		Progress: s.Progress(),
		Dir:      s.Dir,
		Speed:    s.DownloadSpeed,
	}
}
