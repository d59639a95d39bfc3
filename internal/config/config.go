package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SuitePath   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Analysis settings
	Processors int

	// File extensions treated as suite files
	SuiteExtensions []string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors int
	SuitePath  string
	NameFilter string
	TestCases  bool
	Keywords   bool
	FailFast   bool
	Strict     bool
	OpenIssues bool
}

// New creates a new Config with defaults, applying .env and environment
// overrides on top.
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SuitePath:      DefaultSuitePath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	cfg.SuiteExtensions = make([]string, len(DefaultSuiteExtensions))
	copy(cfg.SuiteExtensions, DefaultSuiteExtensions)
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)

	cfg.applyEnv()
	return cfg
}

// applyEnv loads a .env file if present and applies RTP_* overrides.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("RTP_SUITE_PATH"); v != "" {
		c.SuitePath = v
	}
	if v := os.Getenv("RTP_OUTPUT_DIR"); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv("RTP_PROCESSORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Processors = n
		}
	}
}

// GetSuitePath returns the suite root, using the flag if provided
func (c *Config) GetSuitePath() string {
	if c.Flags.SuitePath != "" {
		if filepath.IsAbs(c.Flags.SuitePath) {
			return c.Flags.SuitePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SuitePath)
	}
	return filepath.Join(c.ProjectPath, c.SuitePath)
}

// GetOutputPath returns the full path to the output JSON file. Resolves to
// an absolute path so analyze and issues always read/write the same file
// regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// IsSuiteFile reports whether the file name has a suite extension.
func (c *Config) IsSuiteFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range c.SuiteExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
