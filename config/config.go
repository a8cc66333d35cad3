package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for branchwatch.
type Config struct {
	Title          TitleConfig `yaml:"title"`
	Projects       []Project   `yaml:"projects"`
	DefaultProject string      `yaml:"default_project"`
}

// TitleConfig controls how the branch name is rendered and where it goes.
type TitleConfig struct {
	Sink      string `yaml:"sink"`      // "terminal", "file" or "stdout"
	Placement string `yaml:"placement"` // "prefix" or "suffix"
	Separator string `yaml:"separator"` // Text between base title and branch
	Base      string `yaml:"base"`      // Base title; empty means the workspace dir name
	File      string `yaml:"file"`      // Target path, required by the "file" sink
}

// Project describes one launchable run target of the workspace.
type Project struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`    // Executable path; inline or ${ENV_VAR}
	Args    []string `yaml:"args"`    // Arguments passed verbatim
	WorkDir string   `yaml:"workdir"` // Working directory for the child process
}

// Sink names accepted by TitleConfig.Sink.
const (
	SinkTerminal = "terminal"
	SinkFile     = "file"
	SinkStdout   = "stdout"
)

// Placement names accepted by TitleConfig.Placement.
const (
	PlacementPrefix = "prefix"
	PlacementSuffix = "suffix"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no file is present:
// terminal title, branch appended after " - ", no run targets.
func Default() *Config {
	return &Config{
		Title: TitleConfig{
			Sink:      SinkTerminal,
			Placement: PlacementSuffix,
			Separator: " - ",
		},
	}
}

// Load reads and parses a configuration file, expanding environment
// variables in paths and filling in defaults for omitted title settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	applyDefaults(cfg)

	// Expand ${ENV_VAR} references in every configured path
	cfg.Title.File = expandPath(cfg.Title.File)
	for i := range cfg.Projects {
		cfg.Projects[i].Path = expandPath(cfg.Projects[i].Path)
		cfg.Projects[i].WorkDir = expandPath(cfg.Projects[i].WorkDir)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".branchwatch.yaml",
		".branchwatch.yml",
		"branchwatch.yaml",
		"branchwatch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// FindProject returns the run target with the given name. An empty name
// selects the configured default project. The second return value is false
// when no target could be selected.
func (c *Config) FindProject(name string) (Project, bool) {
	if name == "" {
		name = c.DefaultProject
	}
	if name == "" {
		return Project{}, false
	}

	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// applyDefaults fills in title settings left empty by the config file.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Title.Sink == "" {
		cfg.Title.Sink = def.Title.Sink
	}
	if cfg.Title.Placement == "" {
		cfg.Title.Placement = def.Title.Placement
	}
	if cfg.Title.Separator == "" {
		cfg.Title.Separator = def.Title.Separator
	}
}

// expandPath expands environment variable references (${VAR}) in a path.
func expandPath(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for required and well-formed configuration values.
func validate(cfg *Config) error {
	switch cfg.Title.Sink {
	case SinkTerminal, SinkFile, SinkStdout:
	default:
		return fmt.Errorf("title.sink must be one of %q, %q, %q; got %q",
			SinkTerminal, SinkFile, SinkStdout, cfg.Title.Sink)
	}

	if cfg.Title.Sink == SinkFile && cfg.Title.File == "" {
		return errors.New("title.file is required when title.sink is \"file\"")
	}

	switch cfg.Title.Placement {
	case PlacementPrefix, PlacementSuffix:
	default:
		return fmt.Errorf("title.placement must be %q or %q; got %q",
			PlacementPrefix, PlacementSuffix, cfg.Title.Placement)
	}

	seen := make(map[string]bool, len(cfg.Projects))
	for i, p := range cfg.Projects {
		if p.Name == "" {
			return fmt.Errorf("projects[%d].name is required", i)
		}
		if p.Path == "" {
			return fmt.Errorf("projects[%d].path is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate project name %q", p.Name)
		}
		seen[p.Name] = true
	}

	if cfg.DefaultProject != "" && !seen[cfg.DefaultProject] {
		return fmt.Errorf("default_project %q is not defined in projects", cfg.DefaultProject)
	}

	return nil
}
