package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/config"
	"github.com/abhisek/prepiz/internal/engine"
	"github.com/abhisek/prepiz/internal/logger"
	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/store"
)

// env is what a command needs to work on the learner's record.
type env struct {
	cfg *config.Config
	eng *engine.Engine
	log *logger.Logger
	kv  store.KV
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// openEnv resolves configuration, opens the configured backend and builds
// the engine.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	kv, err := openKV(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	log = log.With("backend", string(cfg.Backend), "user", cfg.UserKey)
	st := progress.NewStore(kv, cfg.UserKey, log)
	eng := engine.New(st,
		engine.WithLogger(log),
		engine.WithDailyGoal(cfg.DailyGoal),
	)
	return &env{cfg: cfg, eng: eng, log: log, kv: kv}, nil
}

// loadConfig applies persistent flags on top of .env and the environment.
// Flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = config.Backend(strings.ToLower(v))
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.UserKey = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openKV(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil

	case config.BackendRedis:
		r, err := store.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil

	case config.BackendMongo:
		m, err := store.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return m, nil

	default:
		path := cfg.DBPath
		if path == "" {
			p, err := store.DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
			path = p
		} else if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
		s, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
