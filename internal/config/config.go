package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/tablegames/blackjack-table-be/internal/game"
)

// ServerConfig is the complete server configuration.
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Listen           string `hcl:"listen,optional"`
	AllowedOrigin    string `hcl:"allowed_origin,optional"`
	DatabasePath     string `hcl:"database,optional"`
	StartingBankroll int    `hcl:"starting_bankroll,optional"`
	LogLevel         string `hcl:"log_level,optional"`
}

// TableConfig declares a table to create at startup. Rules names a preset
// ("classic" or "premium"); bet limits may override the preset's.
type TableConfig struct {
	Name   string `hcl:"name,label"`
	Rules  string `hcl:"rules,optional"`
	MinBet int    `hcl:"min_bet,optional"`
	MaxBet int    `hcl:"max_bet,optional"`
}

// DefaultServerConfig returns the configuration used when no file exists.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Listen:           ":8080",
			AllowedOrigin:    "http://localhost:5173",
			DatabasePath:     "./data/blackjack.db",
			StartingBankroll: 1000,
			LogLevel:         "info",
		},
		Tables: []TableConfig{
			{Name: "main", Rules: "classic"},
		},
	}
}

// LoadServerConfig loads the server configuration from an HCL file. A
// missing file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = "http://localhost:5173"
	}
	if cfg.Server.DatabasePath == "" {
		cfg.Server.DatabasePath = "./data/blackjack.db"
	}
	if cfg.Server.StartingBankroll == 0 {
		cfg.Server.StartingBankroll = 1000
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = []TableConfig{{Name: "main", Rules: "classic"}}
	}
	for i := range cfg.Tables {
		if cfg.Tables[i].Rules == "" {
			cfg.Tables[i].Rules = "classic"
		}
	}

	return &cfg, nil
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Server.StartingBankroll < 0 {
		return fmt.Errorf("starting bankroll must not be negative")
	}
	for _, table := range c.Tables {
		if _, ok := game.RulesByName(table.Rules); !ok {
			return fmt.Errorf("table %s: unknown rules preset %q", table.Name, table.Rules)
		}
		if table.MinBet < 0 || table.MaxBet < 0 {
			return fmt.Errorf("table %s: bet limits must not be negative", table.Name)
		}
		if table.MinBet > 0 && table.MaxBet > 0 && table.MinBet > table.MaxBet {
			return fmt.Errorf("table %s: min bet must not exceed max bet", table.Name)
		}
	}
	return nil
}

// RulesFor resolves the preset for a table entry, applying its overrides.
func (c *TableConfig) RulesFor() (game.TableRules, error) {
	rules, ok := game.RulesByName(c.Rules)
	if !ok {
		return game.TableRules{}, fmt.Errorf("unknown rules preset %q", c.Rules)
	}
	if c.MinBet > 0 {
		rules.MinBet = c.MinBet
	}
	if c.MaxBet > 0 {
		rules.MaxBet = c.MaxBet
	}
	return rules, nil
}
