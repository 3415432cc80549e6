package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"exam-prep-assistant/config"
	"exam-prep-assistant/internal/agent"
	"exam-prep-assistant/internal/agent/tools"
	"exam-prep-assistant/internal/chat"
	chatUC "exam-prep-assistant/internal/chat/usecase"
	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/checkpoint/memory"
	redisStore "exam-prep-assistant/internal/checkpoint/redis"
	"exam-prep-assistant/internal/router"
	"exam-prep-assistant/internal/workflow"
	"exam-prep-assistant/pkg/eventbus"
	"exam-prep-assistant/pkg/llmprovider"
	"exam-prep-assistant/pkg/log"
	"exam-prep-assistant/pkg/tavily"
)

// Deps bundles the runtime components shared by the API server and the CLI.
type Deps struct {
	Config    *config.Config
	Log       log.Logger
	LLM       *llmprovider.Manager
	Store     checkpoint.Store
	Publisher eventbus.Publisher
	Engine    *workflow.Workflow
	Chat      chat.UseCase

	closers []func()
}

// Build wires every component from cfg. reg receives the workflow metrics; nil skips them.
func Build(ctx context.Context, cfg *config.Config, l log.Logger, reg prometheus.Registerer) (*Deps, error) {
	d := &Deps{Config: cfg, Log: l}

	llm, err := buildLLM(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	d.LLM = llm

	st, err := d.buildStore(ctx, cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to initialize checkpoint store: %w", err)
	}
	d.Store = st

	pub, err := d.buildPublisher(ctx, cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	d.Publisher = pub

	registry, err := buildTools(ctx, cfg, l)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to initialize tools: %w", err)
	}

	var hooks []workflow.LifecycleHooks
	if reg != nil {
		metrics, mErr := workflow.NewMetrics(reg)
		if mErr != nil {
			d.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", mErr)
		}
		hooks = append(hooks, metrics.Hooks())
	}

	engine, err := workflow.New(ctx, workflow.Deps{
		LLM:    llm,
		Tools:  registry,
		Router: router.New(l),
		Store:  st,
		Logger: l,
		Hooks:  hooks,
	})
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to compile workflow: %w", err)
	}
	d.Engine = engine
	d.Chat = chatUC.New(l, engine, st, pub, cfg.Events.Subject)

	return d, nil
}

// Close releases connections in reverse order of creation.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func buildLLM(ctx context.Context, cfg *config.Config, l log.Logger) (*llmprovider.Manager, error) {
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, l)
	if err != nil {
		return nil, err
	}
	managerCfg, err := llmprovider.ManagerConfig(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	manager := llmprovider.NewManager(providers, managerCfg, l)
	l.Infof(ctx, "Initialized model %s (%s)", manager.Model(), manager.Name())
	return manager, nil
}

func buildTools(ctx context.Context, cfg *config.Config, l log.Logger) (*agent.ToolRegistry, error) {
	registry := agent.NewToolRegistry()
	if cfg.Search.APIKey == "" {
		l.Warn(ctx, "TAVILY_API_KEY not set, current affairs search is disabled")
		return registry, nil
	}

	client, err := tavily.New(tavily.Config{
		APIKey:     cfg.Search.APIKey,
		BaseURL:    cfg.Search.BaseURL,
		MaxResults: cfg.Search.MaxResults,
		Depth:      cfg.Search.Depth,
		CacheTTL:   cfg.Search.CacheTTL,
		RatePerMin: cfg.Search.RatePerMin,
	})
	if err != nil {
		return nil, err
	}
	registry.Register(tools.NewCurrentAffairsSearchTool(client))
	l.Infof(ctx, "Registered tool: %s", tools.CurrentAffairsSearchName)
	return registry, nil
}

func (d *Deps) buildStore(ctx context.Context, cfg *config.Config) (checkpoint.Store, error) {
	switch cfg.Checkpoint.Backend {
	case "", config.CheckpointBackendMemory:
		d.Log.Info(ctx, "using in-memory checkpoint store")
		return memory.NewStore(), nil
	case config.CheckpointBackendRedis:
		st := redisStore.New(cfg.Checkpoint.RedisAddr, cfg.Checkpoint.RedisPassword, cfg.Checkpoint.RedisDB,
			redisStore.WithPrefix(cfg.Checkpoint.Prefix))
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := st.Ping(pingCtx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Checkpoint.RedisAddr, err)
		}
		d.closers = append(d.closers, func() { _ = st.Close() })
		d.Log.Infof(ctx, "using redis checkpoint store at %s", cfg.Checkpoint.RedisAddr)
		return st, nil
	default:
		return nil, fmt.Errorf("invalid checkpoint backend: %s (valid options: memory, redis)", cfg.Checkpoint.Backend)
	}
}

func (d *Deps) buildPublisher(ctx context.Context, cfg *config.Config) (eventbus.Publisher, error) {
	if cfg.Events.NATSURL == "" {
		return eventbus.NewNop(), nil
	}
	pub, err := eventbus.Connect(cfg.Events.NATSURL, nats.Name(ServiceName), nats.MaxReconnects(-1))
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, pub.Close)
	d.Log.Infof(ctx, "publishing turn events to %s on %s", cfg.Events.NATSURL, cfg.Events.Subject)
	return pub, nil
}

// Ready pings the checkpoint backend when it supports it. The in-memory store is always ready.
func (d *Deps) Ready(ctx context.Context) error {
	if p, ok := d.Store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("checkpoint store: %w", err)
		}
	}
	return nil
}
