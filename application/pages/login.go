package pages

import (
	"context"

	"github.com/go-faster/errors"
)

// LoginPage is the storefront landing page
type LoginPage struct {
	*Base
	baseURL string
}

// NewLoginPage - creates login page for the storefront at baseURL
func NewLoginPage(base *Base, baseURL string) *LoginPage {
	return &LoginPage{Base: base, baseURL: baseURL}
}

// Open - navigates to the landing page and waits for the form
func (p *LoginPage) Open(ctx context.Context) error {
	if err := p.browser.Navigate(ctx, p.baseURL+"/"); err != nil {
		return errors.Wrap(err, "open login page")
	}
	_, err := p.find(ctx, usernameInput)
	return err
}

// Login - fills the credentials and submits
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	p.logger.Infof("Logging in as %s", username)
	if err := p.typeInto(ctx, usernameInput, username); err != nil {
		return err
	}
	if err := p.typeInto(ctx, passwordInput, password); err != nil {
		return err
	}
	return p.click(ctx, loginButton)
}

// ErrorMessage - returns the login error banner text, empty when there is none
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	els, err := p.browser.FindAll(ctx, loginError)
	if err != nil {
		return "", errors.Wrap(err, "find login error")
	}
	if len(els) == 0 {
		return "", nil
	}
	return els[0].Text(ctx)
}
