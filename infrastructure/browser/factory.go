package browser

import (
	"saucedemo_automation/domain/interfaces"
	"saucedemo_automation/infrastructure/config"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// New - opens the browser backend selected by cfg.Driver
func New(cfg *config.Config, logger *logrus.Logger) (interfaces.Browser, error) {
	switch cfg.Driver {
	case config.DriverSelenium:
		ctrl, err := NewSeleniumController(SeleniumOptions{
			DriverPath:   cfg.Selenium.DriverPath,
			ChromeBinary: cfg.Selenium.ChromeBinary,
			Port:         cfg.Selenium.Port,
			Headless:     cfg.Selenium.Headless,
			ImplicitWait: cfg.Selenium.ImplicitWait,
		}, logger)
		if err != nil {
			return nil, err
		}
		return ctrl, nil
	case config.DriverPlaywright:
		ctrl, err := NewPlaywrightController(PlaywrightOptions{
			Headless: cfg.Playwright.Headless,
			SlowMo:   cfg.Playwright.SlowMo,
		}, logger)
		if err != nil {
			return nil, err
		}
		return ctrl, nil
	case config.DriverSnapshot:
		doc, err := LoadSnapshot(cfg.Snapshot.File, cfg.SnapshotURL(), logger)
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, errors.Errorf("unknown driver %q", cfg.Driver)
	}
}
