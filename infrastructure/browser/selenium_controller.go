package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumOptions configures the chromedriver-backed browser
type SeleniumOptions struct {
	DriverPath   string
	ChromeBinary string
	Port         int
	Headless     bool
	ImplicitWait time.Duration
}

type SeleniumController struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		return "", errors.Errorf("chromedriver not found at %s", configured)
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", errors.New("chromedriver not found. Please install it or set SAUCE_SELENIUM_DRIVER_PATH")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// NewSeleniumController - starts chromedriver and opens a Chrome session
func NewSeleniumController(opts SeleniumOptions, logger *logrus.Logger) (*SeleniumController, error) {
	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find chromedriver")
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(opts.ChromeBinary)
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, opts.Port)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start chromedriver")
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--window-size=1280,720",
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if chromeBinary != "" {
		chromeCaps.Path = chromeBinary
	}

	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", opts.Port))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, errors.Wrap(err, "failed to create webdriver: Chrome browser not found. Please install Google Chrome or set SAUCE_SELENIUM_CHROME_BINARY")
		}
		return nil, errors.Wrap(err, "failed to create webdriver")
	}

	if opts.ImplicitWait > 0 {
		if err := wd.SetImplicitWaitTimeout(opts.ImplicitWait); err != nil {
			logger.Warnf("Failed to set implicit wait: %v", err)
		}
	}

	return &SeleniumController{
		wd:      wd,
		service: service,
		logger:  logger,
	}, nil
}

// FindOne - finds first element matching locator
func (s *SeleniumController) FindOne(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	s.logger.Debugf("Finding: %s", locator)
	el, err := s.wd.FindElement(locator.By, locator.Value)
	if err != nil {
		return nil, lookupError(err, locator)
	}
	return &seleniumElement{wd: s.wd, el: el, logger: s.logger}, nil
}

// FindAll - finds every element matching locator
func (s *SeleniumController) FindAll(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	s.logger.Debugf("Finding all: %s", locator)
	els, err := s.wd.FindElements(locator.By, locator.Value)
	if err != nil {
		if errors.Is(lookupError(err, locator), interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find all %s", locator)
	}
	return wrapSeleniumElements(s.wd, els, s.logger), nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumController) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return s.wd.Get(url)
}

// CurrentURL - returns current page URL
func (s *SeleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Title - returns current page title
func (s *SeleniumController) Title(ctx context.Context) (string, error) {
	return s.wd.Title()
}

// WaitFor - waits until locator matches at least one element
func (s *SeleniumController) WaitFor(ctx context.Context, locator entities.Locator, timeout time.Duration) error {
	err := s.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		els, err := wd.FindElements(locator.By, locator.Value)
		if err != nil {
			return false, nil
		}
		return len(els) > 0, nil
	}, timeout)
	if err != nil {
		return errors.Wrapf(err, "wait for %s", locator)
	}
	return nil
}

// WaitForURL - waits until the current URL contains fragment
func (s *SeleniumController) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	err := s.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		current, err := wd.CurrentURL()
		if err != nil {
			return false, err
		}
		return strings.Contains(current, fragment), nil
	}, timeout)
	if err != nil {
		return errors.Wrapf(err, "wait for url containing %q", fragment)
	}
	return nil
}

// Screenshot - takes screenshot of current page
func (s *SeleniumController) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// ResetSession - clears cookies and web storage
func (s *SeleniumController) ResetSession(ctx context.Context) error {
	if err := s.wd.DeleteAllCookies(); err != nil {
		return errors.Wrap(err, "delete cookies")
	}
	// Storage is per origin and throws on about:blank.
	if _, err := s.wd.ExecuteScript("try { window.localStorage.clear(); window.sessionStorage.clear(); } catch (e) {}", nil); err != nil {
		s.logger.Warnf("Failed to clear web storage: %v", err)
	}
	return nil
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumController) Close() error {
	if s.wd != nil {
		s.wd.Quit()
	}
	if s.service != nil {
		s.service.Stop()
	}
	return nil
}

type seleniumElement struct {
	wd     selenium.WebDriver
	el     selenium.WebElement
	logger *logrus.Logger
}

func wrapSeleniumElements(wd selenium.WebDriver, els []selenium.WebElement, logger *logrus.Logger) []interfaces.Element {
	out := make([]interfaces.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &seleniumElement{wd: wd, el: el, logger: logger})
	}
	return out
}

func (e *seleniumElement) FindChild(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	el, err := e.el.FindElement(locator.By, locator.Value)
	if err != nil {
		return nil, lookupError(err, locator)
	}
	return &seleniumElement{wd: e.wd, el: el, logger: e.logger}, nil
}

func (e *seleniumElement) FindChildren(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	els, err := e.el.FindElements(locator.By, locator.Value)
	if err != nil {
		if errors.Is(lookupError(err, locator), interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find all %s", locator)
	}
	return wrapSeleniumElements(e.wd, els, e.logger), nil
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.el.GetAttribute(name)
}

// Click - scrolls the element into view, then clicks it
func (e *seleniumElement) Click(ctx context.Context) error {
	script := `arguments[0].scrollIntoView({ block: 'center' }); return true;`
	if _, err := e.wd.ExecuteScript(script, []interface{}{e.el}); err != nil {
		e.logger.Warnf("Failed to scroll to element: %v", err)
		if err := e.el.MoveTo(0, 0); err != nil {
			e.logger.Warnf("Failed to move to element: %v", err)
		}
	}
	return e.el.Click()
}

// Type - clears the field and sends text
func (e *seleniumElement) Type(ctx context.Context, text string) error {
	if err := e.el.Clear(); err != nil {
		e.logger.Warnf("Failed to clear element: %v", err)
	}
	if err := e.el.SendKeys(text); err != nil {
		return errors.Wrap(err, "failed to type text")
	}
	return nil
}

func (e *seleniumElement) IsDisplayed(ctx context.Context) (bool, error) {
	return e.el.IsDisplayed()
}

// lookupError maps a webdriver "no such element" failure to ErrNotFound
func lookupError(err error, locator entities.Locator) error {
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) && wdErr.Err == "no such element" {
		return errors.Wrapf(interfaces.ErrNotFound, "%s", locator)
	}
	if strings.Contains(err.Error(), "no such element") {
		return errors.Wrapf(interfaces.ErrNotFound, "%s", locator)
	}
	return errors.Wrapf(err, "find %s", locator)
}

var _ interfaces.Browser = (*SeleniumController)(nil)
