package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	TickMS       int    `yaml:"tick_ms"`       // tick period in milliseconds, 5 (by default)
	QuantumTicks int    `yaml:"quantum_ticks"` // ticks granted per dispatch, 5 (by default)
	CPUCount     int    `yaml:"cpu_count"`     // simulated CPUs, 1..16, 2 (by default)
	CSVLog       string `yaml:"csv_log"`       // optional CSV event log path
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		TickMS:       5,
		QuantumTicks: 5,
		CPUCount:     2,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.TickMS <= 0 {
		cfg.TickMS = 5
	}
	if cfg.QuantumTicks <= 0 {
		cfg.QuantumTicks = 5
	}
	if cfg.CPUCount < 1 {
		cfg.CPUCount = 1
	} else if cfg.CPUCount > EligibleCPUs(CPUMaskMax) {
		cfg.CPUCount = EligibleCPUs(CPUMaskMax)
	}

	return cfg
}
