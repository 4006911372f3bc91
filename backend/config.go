package main

import (
	"os"
	"strconv"
	"sync"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Addr             string          `json:"-"`
	AiDepth          int             `json:"ai_depth"`
	AiShuffleMoves   bool            `json:"ai_shuffle_moves"`
	AiSeed           int64           `json:"ai_seed"`
	AiLogSearchStats bool            `json:"ai_log_search_stats"`
	Heuristics       HeuristicConfig `json:"heuristics"`
}

// HeuristicConfig holds the evaluator weights. They are deliberately small:
// no combination of the non-material terms may outweigh a king-value
// difference.
type HeuristicConfig struct {
	CenterBonus  float64 `json:"center_bonus"`
	RemovedBonus float64 `json:"removed_bonus"`
	ThreatBonus  float64 `json:"threat_bonus"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Addr:             envString("MINICHESS_ADDR", ":8080"),
		AiDepth:          envInt("MINICHESS_AI_DEPTH", 4),
		AiShuffleMoves:   envBool("MINICHESS_AI_SHUFFLE", false),
		AiSeed:           int64(envInt("MINICHESS_AI_SEED", 0)),
		AiLogSearchStats: envBool("MINICHESS_AI_LOG_SEARCH_STATS", false),
		Heuristics: HeuristicConfig{
			CenterBonus:  0.5,
			RemovedBonus: 0.5,
			ThreatBonus:  0.1,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
