package config

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	XDGName = "shelf"

	EnvDirectory = "SHELF_DIRECTORY"
	EnvLogLevel  = "SHELF_LOG_LEVEL"
	EnvLogFile   = "SHELF_LOG_FILE"
)

var (
	// Default is the configuration used when ~/.shelf.yaml is absent, and the
	// base that the file is merged over when it is not.
	Default = Config{
		Directory: filepath.Join(xdg.DataHome, XDGName, "themes"),
		LogLevel:  "info",
		AltScreen: true,
	}
)

type Config struct {
	// Directory is the root under which every theme is a folder
	Directory string `yaml:"directory" validate:"required"`
	LogLevel  string `yaml:"logLevel" validate:"oneof=debug info warn error disabled"`
	// LogFile defaults to shelf.log in the xdg runtime dir when empty
	LogFile   string `yaml:"logFile,omitempty" validate:""`
	AltScreen bool   `yaml:"altScreen"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	return finish(&c)
}

// Load reads the config file at path, tolerating its absence, then applies
// environment overrides. A .env in the working directory is loaded first.
func Load(path string) (*Config, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand %s: %w", path, err)
	}

	f, err := os.Open(expanded)
	if errors.Is(err, os.ErrNotExist) {
		c := Default
		return finish(&c)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open config %s: %w", expanded, err)
	}
	defer f.Close()

	return NewFromReader(f)
}

func finish(c *Config) (*Config, error) {
	c.applyEnv()

	validate := validator.New()
	err := validate.Struct(c)
	if err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDirectory); ok && v != "" {
		c.Directory = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		c.LogFile = v
	}
}
