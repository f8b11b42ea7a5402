package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Config represents the mockgenc config file.
type Config struct {
	Schema          []string                     `yaml:"schema"`
	Query           []string                     `yaml:"query"`
	MockGen         MockGenConfig                `yaml:"mockgen"`
	Scalars         map[string]*ScalarMockConfig `yaml:"scalars,omitempty"`
	StrictFragments bool                         `yaml:"strict_fragments,omitempty"`

	// Loaded by LoadSchema / LoadQuery.
	LoadedSchema *ast.Schema          `yaml:"-"`
	Documents    []*ast.QueryDocument `yaml:"-"`
}

// MockGenConfig are the allowed options for the 'mockgen' config.
type MockGenConfig struct {
	Filename string `yaml:"filename"`
}

func (c MockGenConfig) IsDefined() bool {
	return c.Filename != ""
}

func (c MockGenConfig) Check() error {
	if c.Filename == "" {
		return errors.New("filename must be specified")
	}
	if !strings.HasSuffix(c.Filename, ".ts") {
		return fmt.Errorf("filename should be a .ts file, got %s", c.Filename)
	}

	return nil
}

// LoadConfig loads and parses the mockgenc config file.
func LoadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	// validation
	if len(c.Schema) == 0 {
		return nil, errors.New("'schema' must specify at least one SDL file or glob")
	}

	if len(c.Query) == 0 {
		return nil, errors.New("'query' must specify at least one document file or glob")
	}

	if err := c.MockGen.Check(); err != nil {
		return nil, fmt.Errorf("mockgen: %w", err)
	}

	for _, name := range sortedScalarNames(c.Scalars) {
		if err := c.Scalars[name].normalize(name); err != nil {
			return nil, fmt.Errorf("scalars: %w", err)
		}
	}

	return &c, nil
}

// FindConfigFile searches for a config file with one of the given names,
// walking up from dir to the filesystem root.
func FindConfigFile(dir string, fileNames []string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("unable to get working dir to find config: %w", err)
	}

	for {
		for _, fileName := range fileNames {
			path := filepath.Join(dir, fileName)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to find config file in the current or any parent directory (looked for %s)", strings.Join(fileNames, ", "))
}

// LoadSchema expands the schema globs and parses all SDL files into one schema.
func (c *Config) LoadSchema() error {
	filenames, err := expandFilenames(c.Schema)
	if err != nil {
		return err
	}

	sources := make([]*ast.Source, 0, len(filenames))
	for _, filename := range filenames {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("unable to read schema file %s: %w", filename, err)
		}
		sources = append(sources, &ast.Source{Name: filename, Input: string(content)})
	}

	schema, gqlErr := gqlparser.LoadSchema(sources...)
	if gqlErr != nil {
		return fmt.Errorf("load schema failed: %w", gqlErr)
	}

	c.LoadedSchema = schema

	return nil
}

// LoadQuery expands the query globs and parses each document file on its own.
// Documents are parsed without cross-file validation so that a fragment
// defined in one file may be spread in another, or be missing entirely.
func (c *Config) LoadQuery() error {
	filenames, err := expandFilenames(c.Query)
	if err != nil {
		return err
	}

	documents := make([]*ast.QueryDocument, 0, len(filenames))
	for _, filename := range filenames {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("unable to read query file %s: %w", filename, err)
		}

		document, gqlErr := parser.ParseQuery(&ast.Source{Name: filename, Input: string(content)})
		if gqlErr != nil {
			return fmt.Errorf("parse query file %s failed: %w", filename, gqlErr)
		}

		documents = append(documents, document)
	}

	c.Documents = documents

	return nil
}

// expandFilenames resolves globs to a sorted, deduplicated file list.
func expandFilenames(patterns []string) ([]string, error) {
	uniq := map[string]struct{}{}
	var filenames []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched %s", pattern)
		}
		for _, match := range matches {
			if _, ok := uniq[match]; ok {
				continue
			}
			uniq[match] = struct{}{}
			filenames = append(filenames, match)
		}
	}

	sort.Strings(filenames)

	return filenames, nil
}

func sortedScalarNames(scalars map[string]*ScalarMockConfig) []string {
	names := make([]string, 0, len(scalars))
	for name := range scalars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
