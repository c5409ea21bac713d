package pages

import (
	"context"

	"github.com/go-faster/errors"
)

// ChromePage covers the header, sidebar and footer shared by logged-in pages
type ChromePage struct {
	*Base
}

// NewChromePage - creates global elements page
func NewChromePage(base *Base) *ChromePage {
	return &ChromePage{Base: base}
}

// MenuButtonDisplayed - checks the burger menu button
func (p *ChromePage) MenuButtonDisplayed(ctx context.Context) (bool, error) {
	return p.displayed(ctx, menuButton)
}

// CartButtonDisplayed - checks the cart icon
func (p *ChromePage) CartButtonDisplayed(ctx context.Context) (bool, error) {
	return p.displayed(ctx, cartLink)
}

// FooterDisplayed - checks the footer
func (p *ChromePage) FooterDisplayed(ctx context.Context) (bool, error) {
	return p.displayed(ctx, footer)
}

// CopyrightDisplayed - checks the footer copyright line
func (p *ChromePage) CopyrightDisplayed(ctx context.Context) (bool, error) {
	return p.displayed(ctx, footerCopy)
}

// OpenMenu - opens the sidebar and waits for its links
func (p *ChromePage) OpenMenu(ctx context.Context) error {
	if err := p.click(ctx, menuButton); err != nil {
		return errors.Wrap(err, "open menu")
	}
	return p.waitDisplayed(ctx, allItemsLink)
}

// GoToAllItems - follows the sidebar "All Items" link
func (p *ChromePage) GoToAllItems(ctx context.Context) error {
	if err := p.waitDisplayed(ctx, allItemsLink); err != nil {
		return err
	}
	if err := p.click(ctx, allItemsLink); err != nil {
		return errors.Wrap(err, "all items")
	}
	return p.waitURL(ctx, InventoryPath)
}
