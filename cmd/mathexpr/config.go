package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/mathexpr"
)

// config is the contents of a bindings file.
type config struct {
	// Variables are bound in order, so each may use those before it. Values
	// are numbers or expression strings.
	Variables yaml.MapSlice `yaml:"variables"`
	// Functions are defined after all variables, in order.
	Functions []funcdef `yaml:"functions"`

	path string
}

type funcdef struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Body   string   `yaml:"body"`
}

func loadConfig(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(path, b)
}

func parseConfig(path string, b []byte) (*config, error) {
	cfg := config{path: path}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("couldn't read config %s: %w", path, err)
	}
	return &cfg, nil
}

// bind adds the config's variables and functions to env.
func (cfg *config) bind(ctx context.Context, logger *slog.Logger, env *mathexpr.Env) error {
	for _, item := range cfg.Variables {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%s: variable name %v is not a string", cfg.path, item.Key)
		}
		if err := checkName(name); err != nil {
			return fmt.Errorf("%s: %w", cfg.path, err)
		}
		var v float64
		switch x := item.Value.(type) {
		case string:
			s := source{name: cfg.path + ": variable " + name, text: x}
			r, err := evaluate(ctx, logger, env, s, false, nil)
			if err != nil {
				return err
			}
			v = r
		case uint64:
			v = float64(x)
		case int64:
			v = float64(x)
		case int:
			v = float64(x)
		case float64:
			v = x
		default:
			return fmt.Errorf("%s: variable %s has value %v, not a number or expression", cfg.path, name, item.Value)
		}
		env.SetVariable(name, v)
		logger.DebugContext(ctx, "bound variable",
			slog.String("config", cfg.path),
			slog.String("name", name),
			slog.Float64("value", v),
		)
	}
	for i, fd := range cfg.Functions {
		if err := checkName(fd.Name); err != nil {
			return fmt.Errorf("%s: function %d: %w", cfg.path, i+1, err)
		}
		for _, p := range fd.Params {
			if err := checkName(p); err != nil {
				return fmt.Errorf("%s: function %s: parameter %w", cfg.path, fd.Name, err)
			}
		}
		s := source{name: cfg.path + ": function " + fd.Name, text: fd.Body}
		body, err := mathexpr.ParseString(fd.Body)
		if err != nil {
			return &sourceError{name: s.name, src: s.text, err: err}
		}
		fn, err := mathexpr.Lambda(env, fd.Params, body)
		if err != nil {
			return &sourceError{name: s.name, src: s.text, err: err}
		}
		env.SetFunction(fd.Name, fn)
		logger.DebugContext(ctx, "defined function",
			slog.String("config", cfg.path),
			slog.String("name", fd.Name),
			slog.Any("params", fd.Params),
			slog.String("body", body.String()),
		)
	}
	return nil
}
