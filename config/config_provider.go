package config

import (
	"errors"
	"strings"

	"github.com/lakefield/deepresearch/pkg/otel"
	"github.com/lakefield/deepresearch/pkg/provider"
	"github.com/lakefield/deepresearch/pkg/provider/anthropic"
	"github.com/lakefield/deepresearch/pkg/provider/openai"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Priority int `yaml:"priority"`
}

func (cfg *Config) registerProviders(f *configFile) error {
	for _, config := range f.Providers {
		completer, err := createCompleter(config)

		if err != nil {
			return err
		}

		name := strings.ToLower(config.Type)

		cfg.Providers.Register(name, otel.NewCompleter(name, config.Model, completer), config.Priority)
	}

	return nil
}

func createCompleter(config providerConfig) (provider.Completer, error) {
	switch strings.ToLower(config.Type) {
	case "openai":
		var options []openai.Option

		if config.URL != "" {
			options = append(options, openai.WithURL(config.URL))
		}

		if config.Model != "" {
			options = append(options, openai.WithModel(config.Model))
		}

		return openai.New(config.Token, options...)

	case "anthropic":
		var options []anthropic.Option

		if config.URL != "" {
			options = append(options, anthropic.WithURL(config.URL))
		}

		if config.Model != "" {
			options = append(options, anthropic.WithModel(config.Model))
		}

		return anthropic.New(config.Token, options...)

	default:
		return nil, errors.New("invalid provider type: " + config.Type)
	}
}
