package app

import (
	"context"

	"github.com/opencode-tools/ocguard/internal/application/doctor"
	"github.com/opencode-tools/ocguard/internal/application/intercept"
	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/infrastructure/blocklist"
	"github.com/opencode-tools/ocguard/internal/infrastructure/config"
	"github.com/opencode-tools/ocguard/internal/infrastructure/history"
	"github.com/opencode-tools/ocguard/internal/infrastructure/hook"
	"github.com/opencode-tools/ocguard/internal/infrastructure/loadavg"
	"github.com/opencode-tools/ocguard/internal/pkg/clock"
	"github.com/opencode-tools/ocguard/internal/pkg/logger"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Blocklist     *blocklist.Service
	Logs          *history.SessionLogStore
	Index         ports.CommandIndex
	Sampler       ports.LoadSampler
	Intercept     *intercept.Service
	Interceptor   ports.ToolInterceptor
	DoctorService *doctor.Service
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph. A broken config file
// degrades to defaults rather than failing: the interceptor must come up even
// when its configuration is damaged.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		log.Warn("config load failed, using defaults", map[string]interface{}{"error": err.Error()})
		cfg = config.Defaults()
	}

	rules, err := blocklist.NewService(cfg.Blocklist.RulesFile)
	if err != nil {
		rules, err = blocklist.NewService("")
		if err != nil {
			return nil, err
		}
	}

	logs := history.NewSessionLogStore(cfg.History.Root)

	var index ports.CommandIndex
	if !cfg.Index.Disabled {
		index = history.NewSQLiteIndex(cfg.Index.Path)
	}

	sampler := loadavg.NewSampler()

	interceptService := &intercept.Service{
		Blocklist: rules,
		Logs:      logs,
		Index:     index,
		Sampler:   sampler,
		Clock:     clock.New(),
		Logger:    log,
		Throttle:  cfg.Throttle,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Blocklist:      rules,
		Index:          index,
		Sampler:        sampler,
	}

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Blocklist:     rules,
		Logs:          logs,
		Index:         index,
		Sampler:       sampler,
		Intercept:     interceptService,
		Interceptor:   hook.NewInterceptor(interceptService, log),
		DoctorService: doctorService,
		Logger:        log,
	}, nil
}

// StartRulesWatcher begins hot-reloading blocklist rules until ctx ends.
// It is a no-op unless blocklist.watch is enabled in the configuration.
func (c *Container) StartRulesWatcher(ctx context.Context) error {
	if !c.Config.Blocklist.Watch {
		return nil
	}
	watcher, err := blocklist.NewWatcher(c.Blocklist, c.Logger)
	if err != nil {
		return err
	}
	go watcher.Run(ctx)
	return nil
}
