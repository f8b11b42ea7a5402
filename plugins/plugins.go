package plugins

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Yamashou/mockgenc/codegen"
	"github.com/Yamashou/mockgenc/config"
	"github.com/Yamashou/mockgenc/plugins/tsmockgen"
)

func GenerateCode(cfg *config.Config) error {
	if !cfg.MockGen.IsDefined() {
		return errors.New("mockgen output is not configured")
	}

	// Pre-flight: every custom scalar must have a configured, resolvable
	// generator before any generation is attempted.
	if err := codegen.ValidateScalars(cfg.LoadedSchema, cfg.Scalars); err != nil {
		return fmt.Errorf("scalar config validation failed: %w", err)
	}

	mockGen := tsmockgen.New(cfg)

	source, err := mockGen.Generate()
	if err != nil {
		return fmt.Errorf("%s failed: %w", mockGen.Name(), err)
	}

	if dir := filepath.Dir(cfg.MockGen.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(cfg.MockGen.Filename, []byte(source), 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", cfg.MockGen.Filename, err)
	}

	return nil
}
