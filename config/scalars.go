package config

import (
	"fmt"
)

// ScalarMockConfig tells the generator how to mock one custom scalar type.
// In YAML it is either a bare generator name:
//
//	scalars:
//	  JSON: json
//
// or a generator with arguments:
//
//	scalars:
//	  Date:
//	    generator: date
//	    arguments: "YYYY-MM-DD"
//
// Arguments may be a single scalar value or a list of positional arguments.
type ScalarMockConfig struct {
	Generator string
	Arguments any

	raw any
}

// UnmarshalYAML captures the raw YAML value; shape validation happens in
// normalize, which knows the scalar's name and can produce a useful error.
func (c *ScalarMockConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.raw = raw

	return nil
}

// normalize validates the raw YAML shape of the config entry for the named
// scalar and fills Generator and Arguments.
func (c *ScalarMockConfig) normalize(scalarName string) error {
	switch v := c.raw.(type) {
	case string:
		if v == "" {
			return fmt.Errorf("scalar %s: generator name must not be empty", scalarName)
		}
		c.Generator = v
	case map[string]any:
		for key := range v {
			if key != "generator" && key != "arguments" {
				return fmt.Errorf("scalar %s: unknown field %q, only 'generator' and 'arguments' are allowed", scalarName, key)
			}
		}
		generator, ok := v["generator"].(string)
		if !ok || generator == "" {
			return fmt.Errorf("scalar %s: 'generator' must be a non-empty string", scalarName)
		}
		if err := checkArgumentsShape(scalarName, v["arguments"]); err != nil {
			return err
		}
		c.Generator = generator
		c.Arguments = v["arguments"]
	case nil:
		return fmt.Errorf("scalar %s: config must not be null", scalarName)
	default:
		return fmt.Errorf("scalar %s: config must be a generator name or a {generator, arguments} mapping, got %T", scalarName, v)
	}

	return nil
}

// checkArgumentsShape rejects argument values we cannot pass to a generator:
// anything that is not a scalar or a list of scalars.
func checkArgumentsShape(scalarName string, arguments any) error {
	switch args := arguments.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return nil
	case []any:
		for _, arg := range args {
			switch arg.(type) {
			case string, bool, int, int64, uint64, float64:
			default:
				return fmt.Errorf("scalar %s: unsupported argument %v (%T) in arguments list", scalarName, arg, arg)
			}
		}

		return nil
	default:
		return fmt.Errorf("scalar %s: unsupported arguments shape %T", scalarName, args)
	}
}
