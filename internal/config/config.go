// Package config loads the zxsyn configuration: a viper-backed file
// plus environment overrides, surfaced as explicit values.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/kegliz/zxsyn/duostra"
)

// Config wraps the loaded viper instance.
type Config struct {
	v *viper.Viper
}

// Load reads zxsyn.yaml from the working directory (optional) and the
// ZXSYN_* environment, with defaults for everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("zxsyn")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("zxsyn")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("port", 8080)
	v.SetDefault("local-only", true)

	v.SetDefault("scheduler", "search")
	v.SetDefault("router", "duostra")
	v.SetDefault("placer", "dfs")
	v.SetDefault("tie-breaker", "min")
	v.SetDefault("available-time", "max")
	v.SetDefault("cost-selection", "min")
	v.SetDefault("num-candidates", 0)
	v.SetDefault("apsp-coefficient", 1)
	v.SetDefault("depth", 4)
	v.SetDefault("never-cache", true)
	v.SetDefault("execute-single-immediately", false)
	v.SetDefault("verify", true)
	v.SetDefault("seed", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	return &Config{v: v}, nil
}

// GetBool reads a boolean key.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetInt reads an integer key.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetString reads a string key.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// Duostra assembles the mapper configuration from the loaded keys.
func (c *Config) Duostra() (duostra.Config, error) {
	cfg := duostra.DefaultConfig()
	var err error
	if cfg.Scheduler, err = duostra.ParseSchedulerType(c.v.GetString("scheduler")); err != nil {
		return cfg, err
	}
	if cfg.Router, err = duostra.ParseRouterType(c.v.GetString("router")); err != nil {
		return cfg, err
	}
	if cfg.Placer, err = duostra.ParsePlacerType(c.v.GetString("placer")); err != nil {
		return cfg, err
	}
	if cfg.TieBreaker, err = duostra.ParseMinMax(c.v.GetString("tie-breaker")); err != nil {
		return cfg, err
	}
	if cfg.AvailableTime, err = duostra.ParseMinMax(c.v.GetString("available-time")); err != nil {
		return cfg, err
	}
	if cfg.CostSelection, err = duostra.ParseMinMax(c.v.GetString("cost-selection")); err != nil {
		return cfg, err
	}
	cfg.NumCandidates = c.v.GetInt("num-candidates")
	cfg.APSPCoeff = c.v.GetInt("apsp-coefficient")
	cfg.Depth = c.v.GetInt("depth")
	cfg.NeverCache = c.v.GetBool("never-cache")
	cfg.ExecuteSingle = c.v.GetBool("execute-single-immediately")
	cfg.Verify = c.v.GetBool("verify")
	cfg.Seed = c.v.GetInt64("seed")
	return cfg, nil
}
