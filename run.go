package main

import (
	"fmt"

	"github.com/Yamashou/mockgenc/config"
	"github.com/Yamashou/mockgenc/plugins"
)

func run() error {
	cfgFile, err := config.FindConfigFile(".", []string{".mockgenc.yml", "mockgenc.yml", ".mockgenc.yaml", "mockgenc.yaml"})
	if err != nil {
		return fmt.Errorf("failed to find config file: %w", err)
	}

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.LoadSchema(); err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	if err := cfg.LoadQuery(); err != nil {
		return fmt.Errorf("failed to load query documents: %w", err)
	}

	if err := plugins.GenerateCode(cfg); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
