package lox

import "github.com/goccy/go-yaml"

// Config is the small YAML document `loxi run --config` accepts: cosmetic
// REPL settings and whether the resolver's non-fatal warnings should block
// evaluation.
type Config struct {
	Banner        string `yaml:"banner"`
	WarningsFatal bool   `yaml:"warnings_fatal"`
}

// DefaultConfig is used when no --config file is given.
func DefaultConfig() Config {
	return Config{Banner: "loxi - a tree-walking Lox interpreter", WarningsFatal: false}
}

func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
