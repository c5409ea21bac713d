// Package pages holds the storefront page objects. Every page works through
// interfaces.Browser so the same code drives Selenium, Playwright or a saved
// snapshot.
package pages

import (
	"context"
	"strings"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every wait a page performs
const DefaultTimeout = 10 * time.Second

const pollInterval = 200 * time.Millisecond

// Base carries the browser handle shared by all pages
type Base struct {
	browser interfaces.Browser
	logger  *logrus.Logger
	timeout time.Duration
}

// NewBase - creates base page helpers; a non-positive timeout means DefaultTimeout
func NewBase(browser interfaces.Browser, timeout time.Duration, logger *logrus.Logger) *Base {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Base{
		browser: browser,
		logger:  logger,
		timeout: timeout,
	}
}

// Browser returns the underlying browser
func (b *Base) Browser() interfaces.Browser {
	return b.browser
}

// CurrentURL returns the page URL
func (b *Base) CurrentURL(ctx context.Context) (string, error) {
	return b.browser.CurrentURL(ctx)
}

func (b *Base) find(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	if err := b.browser.WaitFor(ctx, locator, b.timeout); err != nil {
		return nil, errors.Wrapf(err, "wait for %s", locator)
	}
	return b.browser.FindOne(ctx, locator)
}

func (b *Base) click(ctx context.Context, locator entities.Locator) error {
	el, err := b.find(ctx, locator)
	if err != nil {
		return err
	}
	b.logger.Debugf("Click %s", locator)
	if err := el.Click(ctx); err != nil {
		return errors.Wrapf(err, "click %s", locator)
	}
	return nil
}

func (b *Base) typeInto(ctx context.Context, locator entities.Locator, text string) error {
	el, err := b.find(ctx, locator)
	if err != nil {
		return err
	}
	if err := el.Type(ctx, text); err != nil {
		return errors.Wrapf(err, "type into %s", locator)
	}
	return nil
}

func (b *Base) text(ctx context.Context, locator entities.Locator) (string, error) {
	el, err := b.find(ctx, locator)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", locator)
	}
	return strings.TrimSpace(text), nil
}

func (b *Base) texts(ctx context.Context, locator entities.Locator) ([]string, error) {
	els, err := b.browser.FindAll(ctx, locator)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", locator)
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", locator)
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}

func (b *Base) count(ctx context.Context, locator entities.Locator) (int, error) {
	els, err := b.browser.FindAll(ctx, locator)
	if err != nil {
		return 0, errors.Wrapf(err, "find %s", locator)
	}
	return len(els), nil
}

// displayed reports false rather than an error when the element is absent
func (b *Base) displayed(ctx context.Context, locator entities.Locator) (bool, error) {
	el, err := b.browser.FindOne(ctx, locator)
	if errors.Is(err, interfaces.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return el.IsDisplayed(ctx)
}

// waitDisplayed polls until the element is visible, the sidebar menu slides in
// with an animation
func (b *Base) waitDisplayed(ctx context.Context, locator entities.Locator) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		shown, err := b.displayed(ctx, locator)
		if err != nil {
			return err
		}
		if shown {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "%s not displayed", locator)
		case <-ticker.C:
		}
	}
}

func (b *Base) waitURL(ctx context.Context, fragment string) error {
	if err := b.browser.WaitForURL(ctx, fragment, b.timeout); err != nil {
		return errors.Wrapf(err, "wait for url %q", fragment)
	}
	return nil
}
