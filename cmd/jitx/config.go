package main

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config file, eg.
//
//	mode: native
//	vars:
//	  x: int32
//	  y: float64:1.5
type config struct {
	Mode string            `yaml:"mode"`
	Vars map[string]string `yaml:"vars"`
}

func loadConfig(path string) (*config, error) {
	if path == "" {
		return nil, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return parseConfig(buf)
}

func parseConfig(buf []byte) (*config, error) {
	cfg := &config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c *config) varNames() []string {
	out := make([]string, 0, len(c.Vars))
	for name := range c.Vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
