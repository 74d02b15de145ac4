// Package config loads settings for the rpn command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all rpn command settings.
type Config struct {
	// Format is the fmt verb used to print results, e.g. "%g" or "%.3f".
	Format string `yaml:"format"`
	// Prompt is printed before each line of interactive input. Empty
	// disables the prompt and the greeting.
	Prompt string `yaml:"prompt"`
	// Echo prints the postfix form of each expression before its result.
	Echo bool `yaml:"echo"`
	// Color enables colored results and errors.
	Color bool `yaml:"color"`

	Commands CommandsConfig `yaml:"commands"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CommandsConfig names the reserved session commands.
type CommandsConfig struct {
	// Exit ends the session.
	Exit string `yaml:"exit"`
	// Memory prints the last successful result.
	Memory string `yaml:"memory"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format: "%g",
		Prompt: "> ",
		Color:  true,
		Commands: CommandsConfig{
			Exit:   "exit",
			Memory: "mem",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from a YAML file over the defaults, then applies
// environment overrides. A missing file, or an empty path, gives the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist): // use defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies RPN_* variables and NO_COLOR.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RPN_FORMAT"); v != "" {
		c.Format = v
	}
	if v, ok := os.LookupEnv("RPN_PROMPT"); ok {
		c.Prompt = v
	}
	if v := os.Getenv("RPN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Color = false
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !strings.Contains(c.Format, "%") {
		return fmt.Errorf("format %q has no verb", c.Format)
	}
	if s := fmt.Sprintf(c.Format, 1.5); strings.Contains(s, "%!") {
		return fmt.Errorf("format %q cannot print a number: %s", c.Format, s)
	}
	exit := strings.TrimSpace(c.Commands.Exit)
	mem := strings.TrimSpace(c.Commands.Memory)
	if exit == "" || mem == "" {
		return errors.New("session commands must not be empty")
	}
	if exit == mem {
		return fmt.Errorf("exit and memory commands are both %q", exit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return l, fmt.Errorf("invalid log level: %w", err)
	}
	return l, nil
}
