// Package config loads the optional per-project configuration file that
// seeds the Compilation Context before the first check(). Its presence or
// absence has no bearing on the semantic query engine itself — it only
// populates a CompilationContext before the first check(), the same
// external-collaborator role workspace discovery plays.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked for at the workspace root.
const FileName = ".aster.yaml"

// Config mirrors the handful of CompilationContext inputs a project can
// declare up front instead of relying solely on didOpen-discovered files.
type Config struct {
	Packages []string `yaml:"packages"`
	Vapidirs []string `yaml:"vapidirs"`
	CSources []string `yaml:"cSources"`
	LogLevel string   `yaml:"logLevel"`
}

// Load reads and parses path. A missing file is not an error — it returns
// a zero Config and ok=false so the caller can skip seeding silently.
func Load(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, true, nil
}
