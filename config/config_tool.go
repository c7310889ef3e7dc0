package config

import (
	"errors"
	"time"

	"github.com/lakefield/deepresearch/pkg/otel"
	"github.com/lakefield/deepresearch/pkg/tool"
	"github.com/lakefield/deepresearch/pkg/tool/research"
)

func (cfg *Config) RegisterTool(id string, p tool.Provider) {
	if cfg.tools == nil {
		cfg.tools = make(map[string]tool.Provider)
	}

	cfg.tools[id] = p
}

func (cfg *Config) Tools() []tool.Provider {
	var tools []tool.Provider

	for _, p := range cfg.tools {
		tools = append(tools, p)
	}

	return tools
}

func (cfg *Config) Tool(id string) (tool.Provider, error) {
	if cfg.tools != nil {
		if p, ok := cfg.tools[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("tool not found: " + id)
}

type toolConfig struct {
	Type string `yaml:"type"`

	Provider string `yaml:"provider"`

	Timeout      *int     `yaml:"timeout"`
	PollInterval *float64 `yaml:"poll_interval"`
}

func (cfg *Config) registerTools(f *configFile) error {
	if f.Tools.IsZero() {
		return nil
	}

	var configs map[string]toolConfig

	if err := f.Tools.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Tools.Content {
		id := node.Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		t, err := createTool(cfg, config)

		if err != nil {
			return err
		}

		cfg.RegisterTool(id, otel.NewTool(config.Type, t))
	}

	return nil
}

func createTool(cfg *Config, config toolConfig) (tool.Provider, error) {
	switch config.Type {
	case "research":
		var options []research.Option

		if config.Provider != "" {
			options = append(options, research.WithProvider(config.Provider))
		}

		if config.Timeout != nil {
			options = append(options, research.WithTimeout(time.Duration(*config.Timeout)*time.Second))
		}

		if config.PollInterval != nil {
			options = append(options, research.WithPollInterval(time.Duration(*config.PollInterval*float64(time.Second))))
		}

		return research.New(cfg.Providers, options...)

	default:
		return nil, errors.New("invalid tool type: " + config.Type)
	}
}
