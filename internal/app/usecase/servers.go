package usecase

import (
	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/aria2"
	"github.com/supchaser/aria2bot/internal/app/repository"
	"github.com/supchaser/aria2bot/internal/config"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

// BuildServers connects one client and cache per configured backend and
// starts its refresh loop. Per-server overrides win over global settings.
func BuildServers(cfg *config.Config, notifier app.Notifier) []ServerBinding {
	const funcName = "BuildServers"

	servers := cfg.Aria2.Servers()
	bindings := make([]ServerBinding, 0, len(servers))
	for _, named := range servers {
		transport := aria2.CreateTransport(named.Config.RPCURL, named.Config.Token, named.Config.Timeout())
		client := aria2.CreateClient(transport)
		cache := repository.CreateTaskCache(cfg.SubscriberTTL(), notifier)
		server := CreateServerState(named.Name, client, cache, named.Config.Download(cfg.Download), RefreshInterval)

		admins := named.Config.Admins(cfg.Telegram.Admins)
		bindings = append(bindings, ServerBinding{Server: server, Users: admins})

		logger.Info("aria2 server configured",
			zap.String("function", funcName),
			zap.String("server", named.Name),
			zap.String("rpc_url", named.Config.RPCURL),
			zap.Int("admins", len(admins)),
		)
	}

	return bindings
}
