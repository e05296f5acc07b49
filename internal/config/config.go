// Package config bundles the process-wide ceremony settings into one struct
// constructed at startup and passed by reference to the pipeline and its
// collaborators. Precedence: CLI flags (applied by the caller) over
// ZKCEREMONY_* environment variables over the optional ceremony.yaml file.
package config

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no --config flag is given.
const DefaultFile = "ceremony.yaml"

// Config holds every knob the ceremony tooling reads.
type Config struct {
	// Root is the directory holding the NNNN_label contribution folders
	// and the shared powers-of-tau file.
	Root string `yaml:"root"`

	// Params is the path to the powers-of-tau file. Empty means discover
	// the single *.ptau file under Root.
	Params string `yaml:"params"`

	// Verifier is the external verification command plus fixed leading
	// arguments; baseline, params and current paths are appended.
	Verifier []string `yaml:"verifier"`

	// BucketURL is the base URL of the remote bucket holding the
	// canonical ceremony files. Empty disables sync.
	BucketURL string `yaml:"bucket_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:     "ceremony",
		Verifier: []string{"snarkjs", "zkey", "verify"},
	}
}

// Load builds a Config from defaults, the YAML file at path, and the
// environment, in increasing precedence. An empty path means DefaultFile,
// whose absence is fine; a missing explicitly-given file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ZKCEREMONY_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("ZKCEREMONY_PARAMS"); v != "" {
		c.Params = v
	}
	if v := os.Getenv("ZKCEREMONY_VERIFIER"); v != "" {
		c.Verifier = strings.Fields(v)
	}
	if v := os.Getenv("ZKCEREMONY_BUCKET_URL"); v != "" {
		c.BucketURL = v
	}
}
