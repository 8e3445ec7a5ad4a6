package main

import (
	"time"

	rand "math/rand/v2"

	"github.com/coder/quartz"

	"github.com/cardroom/holdem/cmd/cardroom/shared"
	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/internal/server"
)

// ServeCmd runs the WebSocket card room server.
type ServeCmd struct {
	Config   string `kong:"default='cardroom.hcl',help='Path to HCL configuration file'"`
	Host     string `kong:"help='Override the listen host from the config'"`
	Port     int    `kong:"help='Override the listen port from the config'"`
	LogLevel string `kong:"name='log-level',help='Override the log level from the config'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Host != "" {
		cfg.Server.Address = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel)

	seed := cfg.Server.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	rng := func(i int) *rand.Rand {
		return randutil.New(seed + int64(i))
	}

	s := server.New(cfg, logger, quartz.NewReal(), rng)

	logger.Info("Starting card room",
		"addr", cfg.Server.Addr(),
		"tables", len(cfg.Tables),
		"turn_timeout", time.Duration(cfg.Server.TurnTimeoutSec)*time.Second)

	ctx := shared.SetupSignalHandler(logger)
	return s.Run(ctx)
}
