package usecase

import (
	"sort"
	"sync"

	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

// ServerBinding is a backend together with the users allowed to use it.
type ServerBinding struct {
	Server *ServerState
	Users  []int64
}

// Router maps users to the backends they may use and remembers which one
// each multi-backend user has selected.
type Router struct {
	servers    []*ServerState
	byName     map[string]*ServerState
	authorized map[int64]map[string]*ServerState

	mu       sync.RWMutex
	selected map[int64]string
}

func CreateRouter(bindings []ServerBinding) (*Router, error) {
	if len(bindings) == 0 {
		return nil, errs.ErrNoServers
	}

	r := &Router{
		byName:     make(map[string]*ServerState, len(bindings)),
		authorized: make(map[int64]map[string]*ServerState),
		selected:   make(map[int64]string),
	}

	for _, binding := range bindings {
		r.servers = append(r.servers, binding.Server)
		r.byName[binding.Server.Name] = binding.Server
		for _, user := range binding.Users {
			servers, ok := r.authorized[user]
			if !ok {
				servers = make(map[string]*ServerState)
				r.authorized[user] = servers
			}
			servers[binding.Server.Name] = binding.Server
		}
	}

	return r, nil
}

// Authorized returns the sorted backend names user may use.
func (r *Router) Authorized(user int64) ([]string, bool) {
	servers, ok := r.authorized[user]
	if !ok {
		return nil, false
	}

	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// Selected returns the backend the user's commands act on. A user with a
// single backend always has it selected.
func (r *Router) Selected(user int64) (*ServerState, bool) {
	servers := r.authorized[user]
	switch len(servers) {
	case 0:
		return nil, false
	case 1:
		for _, server := range servers {
			return server, true
		}
	}

	r.mu.RLock()
	name, ok := r.selected[user]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	server, ok := servers[name]
	return server, ok
}

func (r *Router) TrySelect(user int64, name string) models.SelectResult {
	const funcName = "Router.TrySelect"

	servers := r.authorized[user]
	if len(servers) == 1 {
		return models.SelectNoNeed
	}
	if _, ok := servers[name]; !ok {
		logger.Warn("server selection rejected",
			zap.String("function", funcName),
			zap.Int64("user_id", user),
			zap.String("server", name),
		)
		return models.SelectFailure
	}

	r.mu.Lock()
	r.selected[user] = name
	r.mu.Unlock()

	logger.Info("server selected",
		zap.String("function", funcName),
		zap.Int64("user_id", user),
		zap.String("server", name),
	)
	return models.SelectSuccess
}

func (r *Router) Servers() []*ServerState {
	return r.servers
}

func (r *Router) Server(name string) (*ServerState, bool) {
	server, ok := r.byName[name]
	return server, ok
}

// Close stops every backend's refresh loop.
func (r *Router) Close() {
	for _, server := range r.servers {
		server.Close()
	}
}
