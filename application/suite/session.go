package suite

import (
	"context"
	"time"

	"saucedemo_automation/application/pages"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// Credentials of the storefront account scenarios log in with
type Credentials struct {
	Username string
	Password string
}

// Session bundles the browser and the page objects a scenario works with
type Session struct {
	Browser   interfaces.Browser
	BaseURL   string
	Login     *pages.LoginPage
	Inventory *pages.InventoryPage
	Detail    *pages.DetailPage
	Cart      *pages.CartPage
	Chrome    *pages.ChromePage

	creds  Credentials
	logger *logrus.Logger
}

// NewSession - creates a session on browser against the storefront at baseURL
func NewSession(browser interfaces.Browser, baseURL string, creds Credentials, timeout time.Duration, logger *logrus.Logger) *Session {
	base := pages.NewBase(browser, timeout, logger)
	return &Session{
		Browser:   browser,
		BaseURL:   baseURL,
		Login:     pages.NewLoginPage(base, baseURL),
		Inventory: pages.NewInventoryPage(base),
		Detail:    pages.NewDetailPage(base),
		Cart:      pages.NewCartPage(base),
		Chrome:    pages.NewChromePage(base),
		creds:     creds,
		logger:    logger,
	}
}

// SignIn - starts from a clean session, logs in and waits for the inventory
func (s *Session) SignIn(ctx context.Context) error {
	if err := s.Login.Open(ctx); err != nil {
		return err
	}
	// Cookies can only be cleared once a page of the storefront origin is loaded
	if err := s.Browser.ResetSession(ctx); err != nil {
		return errors.Wrap(err, "reset session")
	}
	if err := s.Login.Open(ctx); err != nil {
		return err
	}
	if err := s.Login.Login(ctx, s.creds.Username, s.creds.Password); err != nil {
		return err
	}
	if err := s.Inventory.WaitLoaded(ctx); err != nil {
		if msg, _ := s.Login.ErrorMessage(ctx); msg != "" {
			return errors.Errorf("login failed: %s", msg)
		}
		return err
	}
	return nil
}

// Open - navigates to a storefront path such as "/cart.html"
func (s *Session) Open(ctx context.Context, path string) error {
	if err := s.Browser.Navigate(ctx, s.BaseURL+path); err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	return nil
}
