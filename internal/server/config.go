package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address        string `hcl:"address,optional"`
	Port           int    `hcl:"port,optional"`
	LogLevel       string `hcl:"log_level,optional"`
	TurnTimeoutSec int    `hcl:"turn_timeout_seconds,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// TableConfig defines one poker table.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	MaxPlayers int    `hcl:"max_players,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyIn      int    `hcl:"buy_in,optional"`
	Bots       int    `hcl:"bots,optional"`
	BotPolicy  string `hcl:"bot_policy,optional"`
	AutoDeal   bool   `hcl:"auto_deal,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:        "localhost",
			Port:           8080,
			LogLevel:       "info",
			TurnTimeoutSec: 30,
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				MaxPlayers: 6,
				SmallBlind: 5,
				BigBlind:   10,
				BuyIn:      1000,
				Bots:       0,
				AutoDeal:   true,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.TurnTimeoutSec == 0 {
		config.Server.TurnTimeoutSec = 30
	}
	for i := range config.Tables {
		t := &config.Tables[i]
		if t.MaxPlayers == 0 {
			t.MaxPlayers = 6
		}
		if t.BuyIn == 0 {
			t.BuyIn = t.BigBlind * 100
		}
		if t.BotPolicy == "" {
			t.BotPolicy = "random"
		}
	}
}

func validate(config *Config) error {
	seen := map[string]bool{}
	for _, t := range config.Tables {
		if seen[t.Name] {
			return fmt.Errorf("duplicate table %q", t.Name)
		}
		seen[t.Name] = true
		if t.SmallBlind <= 0 || t.BigBlind <= 0 {
			return fmt.Errorf("table %q: blinds must be positive", t.Name)
		}
		if t.SmallBlind > t.BigBlind {
			return fmt.Errorf("table %q: small blind exceeds big blind", t.Name)
		}
		if t.MaxPlayers < 2 || t.MaxPlayers > 10 {
			return fmt.Errorf("table %q: max_players must be 2-10", t.Name)
		}
		if t.Bots >= t.MaxPlayers {
			return fmt.Errorf("table %q: bots leave no free seat", t.Name)
		}
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}
