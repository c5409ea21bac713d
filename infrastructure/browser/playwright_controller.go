package browser

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightOptions configures the Playwright-backed browser
type PlaywrightOptions struct {
	Headless bool
	SlowMo   time.Duration
}

type PlaywrightController struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page
	pages      []playwright.Page
	pagesMutex sync.Mutex
	logger     *logrus.Logger
}

// NewPlaywrightController - starts playwright and opens a Chromium page
func NewPlaywrightController(opts PlaywrightOptions, logger *logrus.Logger) (*PlaywrightController, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "failed to start playwright")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, errors.Wrap(err, "failed to launch browser")
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, errors.Wrap(err, "failed to create context")
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, errors.Wrap(err, "failed to create page")
	}

	controller := &PlaywrightController{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
		pages:   []playwright.Page{page},
		logger:  logger,
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		dialog.Accept()
	})

	// Footer links open new tabs; keep following the newest one and fall
	// back to the first when it closes.
	bctx.OnPage(func(newPage playwright.Page) {
		controller.pagesMutex.Lock()
		defer controller.pagesMutex.Unlock()

		controller.pages = append(controller.pages, newPage)
		controller.page = newPage

		newPage.OnClose(func(closedPage playwright.Page) {
			controller.pagesMutex.Lock()
			defer controller.pagesMutex.Unlock()

			for i, p := range controller.pages {
				if p == closedPage {
					controller.pages = append(controller.pages[:i], controller.pages[i+1:]...)
					break
				}
			}

			if controller.page == closedPage && len(controller.pages) > 0 {
				controller.page = controller.pages[0]
			}
		})
	})

	return controller, nil
}

func (b *PlaywrightController) currentPage() playwright.Page {
	b.pagesMutex.Lock()
	defer b.pagesMutex.Unlock()
	return b.page
}

// FindOne - finds first element matching locator
func (b *PlaywrightController) FindOne(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	sel, err := playwrightSelector(locator, false)
	if err != nil {
		return nil, err
	}
	return firstMatch(b.currentPage().Locator(sel), locator)
}

// FindAll - finds every element matching locator
func (b *PlaywrightController) FindAll(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	sel, err := playwrightSelector(locator, false)
	if err != nil {
		return nil, err
	}
	return allMatches(b.currentPage().Locator(sel), locator)
}

// Navigate - navigates to the specified URL
func (b *PlaywrightController) Navigate(ctx context.Context, url string) error {
	b.logger.Infof("Navigating to: %s", url)
	_, err := b.currentPage().Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	})
	return err
}

// CurrentURL - returns current page URL
func (b *PlaywrightController) CurrentURL(ctx context.Context) (string, error) {
	return b.currentPage().URL(), nil
}

// Title - returns current page title
func (b *PlaywrightController) Title(ctx context.Context) (string, error) {
	return b.currentPage().Title()
}

// WaitFor - waits for an element to be attached to the page
func (b *PlaywrightController) WaitFor(ctx context.Context, locator entities.Locator, timeout time.Duration) error {
	sel, err := playwrightSelector(locator, false)
	if err != nil {
		return err
	}
	err = b.currentPage().Locator(sel).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return errors.Wrapf(err, "wait for %s", locator)
	}
	return nil
}

// WaitForURL - waits until the current URL contains fragment
func (b *PlaywrightController) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	err := b.currentPage().WaitForURL(regexp.MustCompile(regexp.QuoteMeta(fragment)), playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return errors.Wrapf(err, "wait for url containing %q", fragment)
	}
	return nil
}

// Screenshot - takes a screenshot of the current page
func (b *PlaywrightController) Screenshot(ctx context.Context) ([]byte, error) {
	return b.currentPage().Screenshot()
}

// ResetSession - clears cookies and web storage
func (b *PlaywrightController) ResetSession(ctx context.Context) error {
	if err := b.context.ClearCookies(); err != nil {
		return errors.Wrap(err, "clear cookies")
	}
	if _, err := b.currentPage().Evaluate(`() => { try { localStorage.clear(); sessionStorage.clear(); } catch (e) {} }`); err != nil {
		b.logger.Warnf("Failed to clear web storage: %v", err)
	}
	return nil
}

// Close - closes the browser and stops playwright
func (b *PlaywrightController) Close() error {
	var closeErr error
	if b.browser != nil {
		closeErr = b.browser.Close()
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

type playwrightElement struct {
	loc playwright.Locator
}

func firstMatch(loc playwright.Locator, locator entities.Locator) (interfaces.Element, error) {
	count, err := loc.Count()
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", locator)
	}
	if count == 0 {
		return nil, errors.Wrapf(interfaces.ErrNotFound, "%s", locator)
	}
	return &playwrightElement{loc: loc.First()}, nil
}

func allMatches(loc playwright.Locator, locator entities.Locator) ([]interfaces.Element, error) {
	count, err := loc.Count()
	if err != nil {
		return nil, errors.Wrapf(err, "find all %s", locator)
	}
	out := make([]interfaces.Element, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, &playwrightElement{loc: loc.Nth(i)})
	}
	return out, nil
}

func (e *playwrightElement) FindChild(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	sel, err := playwrightSelector(locator, true)
	if err != nil {
		return nil, err
	}
	return firstMatch(e.loc.Locator(sel), locator)
}

func (e *playwrightElement) FindChildren(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	sel, err := playwrightSelector(locator, true)
	if err != nil {
		return nil, err
	}
	return allMatches(e.loc.Locator(sel), locator)
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	text, err := e.loc.InnerText()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	// src and href come back as written; read the resolved property instead so
	// values match what WebDriver reports.
	if name == "src" || name == "href" {
		value, err := e.loc.Evaluate("(el, name) => el[name] || el.getAttribute(name) || ''", name)
		if err != nil {
			return "", err
		}
		s, _ := value.(string)
		return s, nil
	}
	return e.loc.GetAttribute(name)
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.loc.Click()
}

func (e *playwrightElement) Type(ctx context.Context, text string) error {
	return e.loc.Fill(text)
}

func (e *playwrightElement) IsDisplayed(ctx context.Context) (bool, error) {
	return e.loc.IsVisible()
}

// SelectByText picks a <select> option by its label
func (e *playwrightElement) SelectByText(ctx context.Context, text string) error {
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(text),
	})
	return err
}

// playwrightSelector translates a locator into a playwright selector string
func playwrightSelector(locator entities.Locator, relative bool) (string, error) {
	switch locator.By {
	case entities.ByCSSSelector, entities.ByTagName:
		return "css=" + locator.Value, nil
	case entities.ByClassName:
		return "css=." + locator.Value, nil
	case entities.ByID:
		return `css=[id="` + locator.Value + `"]`, nil
	case entities.ByName:
		return `css=[name="` + locator.Value + `"]`, nil
	}
	expr, ok := entities.ToXPath(locator, relative)
	if !ok {
		return "", errors.Wrapf(interfaces.ErrUnsupportedLocator, "playwright cannot evaluate %s", locator)
	}
	return "xpath=" + expr, nil
}

var _ interfaces.Browser = (*PlaywrightController)(nil)
