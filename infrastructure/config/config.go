// Package config loads suite settings from .env, SAUCE_* environment
// variables, command-line flags and config.yaml.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Supported browser backends
const (
	DriverSelenium   = "selenium"
	DriverPlaywright = "playwright"
	DriverSnapshot   = "snapshot"
)

// Config holds the complete suite configuration
type Config struct {
	BaseURL     string        `default:"https://www.saucedemo.com" usage:"Storefront base URL" flag:"base-url"`
	Username    string        `default:"standard_user" usage:"Login user name"`
	Password    string        `default:"secret_sauce" usage:"Login password"`
	Driver      string        `default:"selenium" usage:"Browser backend: selenium, playwright or snapshot"`
	WaitTimeout time.Duration `default:"10s" usage:"Maximum wait for page elements and navigation" flag:"wait-timeout"`
	ReportDir   string        `default:"" usage:"Directory for run reports (default ~/.saucedemo_automation/reports)" flag:"report-dir"`
	LogLevel    string        `default:"info" usage:"Log level: debug, info, warn, error" flag:"log-level"`
	Run         string        `default:"" usage:"Run scenarios matching this filter and exit (\"all\" runs everything)"`
	Selenium    SeleniumConfig
	Playwright  PlaywrightConfig
	Snapshot    SnapshotConfig
}

// SeleniumConfig controls the chromedriver session
type SeleniumConfig struct {
	DriverPath   string        `default:"" usage:"Path to chromedriver" flag:"driver-path"`
	ChromeBinary string        `default:"" usage:"Path to the Chrome binary" flag:"chrome-binary"`
	Port         int           `default:"9515" usage:"chromedriver port"`
	Headless     bool          `default:"true" usage:"Run Chrome headless"`
	ImplicitWait time.Duration `default:"0s" usage:"WebDriver implicit wait" flag:"implicit-wait"`
}

// PlaywrightConfig controls the playwright session
type PlaywrightConfig struct {
	Headless bool          `default:"true" usage:"Run Chromium headless"`
	SlowMo   time.Duration `default:"0s" usage:"Delay between playwright operations" flag:"slow-mo"`
}

// SnapshotConfig points the snapshot backend at a saved page
type SnapshotConfig struct {
	File string `default:"" usage:"Saved HTML page for the snapshot driver"`
	URL  string `default:"" usage:"URL the snapshot was saved from (default <base-url>/inventory.html)"`
}

// Load - loads configuration. A missing .env is not an error. Pass nil args
// to skip flag parsing.
func Load(args []string, files ...string) (*Config, error) {
	// .env file is optional
	_ = godotenv.Load()

	if len(files) == 0 {
		files = []string{"config.yaml"}
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SAUCE",
		SkipFlags: args == nil,
		Args:      args,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyLegacyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyLegacyEnv honours the driver location variables used by older setups
func (c *Config) applyLegacyEnv() {
	if c.Selenium.DriverPath == "" {
		c.Selenium.DriverPath = os.Getenv("BROWSER_DRIVER_PATH")
	}
	if c.Selenium.ChromeBinary == "" {
		c.Selenium.ChromeBinary = os.Getenv("CHROME_BINARY_PATH")
	}
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}

	switch c.Driver {
	case DriverSelenium, DriverPlaywright:
	case DriverSnapshot:
		if c.Snapshot.File == "" {
			return errors.New("snapshot driver needs SAUCE_SNAPSHOT_FILE")
		}
	default:
		return errors.Errorf("unknown driver %q", c.Driver)
	}

	if c.WaitTimeout <= 0 {
		return errors.Errorf("wait timeout must be positive, got %s", c.WaitTimeout)
	}
	return nil
}

// SnapshotURL - page URL the snapshot is treated as
func (c *Config) SnapshotURL() string {
	if c.Snapshot.URL != "" {
		return c.Snapshot.URL
	}
	return c.BaseURL + "/inventory.html"
}

// ReportPath - resolves the report directory
func (c *Config) ReportPath() string {
	if c.ReportDir != "" {
		return c.ReportDir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".saucedemo_automation", "reports")
}
