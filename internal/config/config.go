// Package config loads application configuration. Precedence order:
// built-in defaults, then the optional YAML config file, then
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`

	// Subjects is the default subject set offered for assessments.
	Subjects []string `yaml:"subjects"`

	LLM     llm.Config     `yaml:"llm"`
	Content content.Config `yaml:"content"`
}

// DefaultSubjects is the subject set offered when none is configured.
var DefaultSubjects = []string{
	"Data Structures",
	"Algorithms",
	"DBMS",
	"Operating Systems",
	"OOP",
	"Aptitude",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Subjects: DefaultSubjects,
		LLM:      llm.DefaultConfig(),
		Content:  content.DefaultConfig(),
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// YAML config file when present, overlaid with environment variables.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file is the common case.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Path resolves the config file location:
// 1. PLACEPREP_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/placeprep/config.yaml
// 3. ~/.config/placeprep/config.yaml
func Path() (string, error) {
	if p := os.Getenv("PLACEPREP_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "placeprep", "config.yaml"), nil
}

// applyEnv overlays environment variables onto cfg. LLM variables are
// handled by the llm package's own env loading.
func applyEnv(cfg *Config) {
	if p := os.Getenv("PLACEPREP_DB"); p != "" {
		cfg.DBPath = p
	}
	if s := os.Getenv("PLACEPREP_SUBJECTS"); s != "" {
		var subjects []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				subjects = append(subjects, part)
			}
		}
		if len(subjects) > 0 {
			cfg.Subjects = subjects
		}
	}
	if n := os.Getenv("PLACEPREP_QUESTION_COUNT"); n != "" {
		if count, err := strconv.Atoi(n); err == nil && count > 0 {
			cfg.Content.QuestionCount = count
		}
	}

	cfg.LLM = llm.MergeEnv(cfg.LLM)
}
