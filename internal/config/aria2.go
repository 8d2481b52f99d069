package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/supchaser/aria2bot/internal/utils/errs"
)

// DefaultServerName names the backend of a single-server configuration.
const DefaultServerName = "default"

type Aria2Config struct {
	RPCURL           string          `toml:"rpc_url"`
	Token            string          `toml:"token"`
	TimeoutSecs      int             `toml:"timeout_secs"`
	AdminsOverride   []int64         `toml:"admins_override"`
	DownloadOverride *DownloadConfig `toml:"download_override"`
}

func (a *Aria2Config) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// Admins returns the server specific admin list, falling back to global.
func (a *Aria2Config) Admins(global []int64) []int64 {
	if a.AdminsOverride != nil {
		return a.AdminsOverride
	}
	return global
}

func (a *Aria2Config) Download(global DownloadConfig) DownloadConfig {
	if a.DownloadOverride != nil {
		return *a.DownloadOverride
	}
	return global
}

type NamedServer struct {
	Name   string
	Config *Aria2Config
}

// Aria2Group is either a single backend or several named ones. The zero
// value holds no backend.
type Aria2Group struct {
	single *NamedServer
	multi  map[string]*Aria2Config
}

func NewSingleGroup(name string, cfg Aria2Config) Aria2Group {
	return Aria2Group{single: &NamedServer{Name: name, Config: &cfg}}
}

// NewAria2Group builds a group from named backends. No backend is an error,
// exactly one collapses into a single group.
func NewAria2Group(servers map[string]Aria2Config) (Aria2Group, error) {
	switch len(servers) {
	case 0:
		return Aria2Group{}, errs.ErrNoServers
	case 1:
		for name, cfg := range servers {
			return NewSingleGroup(name, cfg), nil
		}
	}

	multi := make(map[string]*Aria2Config, len(servers))
	for name, cfg := range servers {
		multi[name] = &cfg
	}
	return Aria2Group{multi: multi}, nil
}

func (g Aria2Group) IsMulti() bool {
	return g.multi != nil
}

// Servers lists the backends ordered by name.
func (g Aria2Group) Servers() []NamedServer {
	if g.single != nil {
		return []NamedServer{*g.single}
	}

	servers := make([]NamedServer, 0, len(g.multi))
	for name, cfg := range g.multi {
		servers = append(servers, NamedServer{Name: name, Config: cfg})
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers
}

type fileConfig struct {
	Aria2    toml.Primitive `toml:"aria2"`
	Telegram TelegramConfig `toml:"telegram"`
	Download DownloadConfig `toml:"download"`
}

func loadBotConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseBotConfig(string(data))
}

func parseBotConfig(data string) (*Config, error) {
	var raw fileConfig
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	group, err := decodeAria2Group(md, raw.Aria2)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Aria2:    group,
		Telegram: raw.Telegram,
		Download: raw.Download,
	}
	cfg.applyDefaults()

	return cfg, nil
}

// decodeAria2Group treats an [aria2] table carrying rpc_url as one backend
// and any other [aria2] table as a table of named backends.
func decodeAria2Group(md toml.MetaData, prim toml.Primitive) (Aria2Group, error) {
	if !md.IsDefined("aria2") {
		return Aria2Group{}, errs.ErrNoServers
	}

	var probe map[string]toml.Primitive
	if err := md.PrimitiveDecode(prim, &probe); err != nil {
		return Aria2Group{}, fmt.Errorf("aria2 section must be a table: %w", err)
	}

	if _, ok := probe["rpc_url"]; ok {
		var single Aria2Config
		if err := md.PrimitiveDecode(prim, &single); err != nil {
			return Aria2Group{}, fmt.Errorf("decode aria2 section: %w", err)
		}
		return NewSingleGroup(DefaultServerName, single), nil
	}

	servers := make(map[string]Aria2Config, len(probe))
	for name, p := range probe {
		var server Aria2Config
		if err := md.PrimitiveDecode(p, &server); err != nil {
			return Aria2Group{}, fmt.Errorf("decode aria2 server %q: %w", name, err)
		}
		servers[name] = server
	}

	return NewAria2Group(servers)
}
