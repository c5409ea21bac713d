package pages

import (
	"context"
	"strconv"

	"saucedemo_automation/application/resolver"
	"saucedemo_automation/domain/entities"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// textSelector is implemented by elements that can pick a dropdown option
// natively
type textSelector interface {
	SelectByText(ctx context.Context, text string) error
}

// InventoryPage is the product listing shown after login
type InventoryPage struct {
	*Base
	resolver *resolver.Resolver
}

// NewInventoryPage - creates inventory page
func NewInventoryPage(base *Base) *InventoryPage {
	return &InventoryPage{
		Base:     base,
		resolver: resolver.NewResolver(base.browser, resolver.InventoryFields, base.logger),
	}
}

// WaitLoaded - waits until the item cards are present
func (p *InventoryPage) WaitLoaded(ctx context.Context) error {
	if err := p.browser.WaitFor(ctx, inventoryRow, p.timeout); err != nil {
		return errors.Wrap(err, "inventory page did not load")
	}
	return nil
}

// Title - returns the page header text
func (p *InventoryPage) Title(ctx context.Context) (string, error) {
	return p.text(ctx, pageTitle)
}

// ItemCount - returns the number of item cards
func (p *InventoryPage) ItemCount(ctx context.Context) (int, error) {
	n, err := p.count(ctx, inventoryRow)
	if err != nil {
		return 0, err
	}
	p.logger.Infof("Found %d items on the inventory page", n)
	return n, nil
}

// AddItem - clicks an add-to-cart button
func (p *InventoryPage) AddItem(ctx context.Context, add entities.Locator) error {
	if err := p.click(ctx, add); err != nil {
		return errors.Wrap(err, "add item")
	}
	p.logger.Infof("Added %s", add)
	return nil
}

// RemoveItem - clicks a remove button
func (p *InventoryPage) RemoveItem(ctx context.Context, remove entities.Locator) error {
	if err := p.click(ctx, remove); err != nil {
		return errors.Wrap(err, "remove item")
	}
	p.logger.Infof("Removed %s", remove)
	return nil
}

// AddAll - adds every catalog item to the cart
func (p *InventoryPage) AddAll(ctx context.Context) error {
	for _, item := range Catalog {
		if err := p.AddItem(ctx, item.AddButton()); err != nil {
			return errors.Wrap(err, item.Name)
		}
	}
	return nil
}

// RemoveAll - removes every catalog item from the cart
func (p *InventoryPage) RemoveAll(ctx context.Context) error {
	for _, item := range Catalog {
		if err := p.RemoveItem(ctx, item.RemoveButton()); err != nil {
			return errors.Wrap(err, item.Name)
		}
	}
	return nil
}

// OpenCart - clicks the cart icon and waits for the cart page
func (p *InventoryPage) OpenCart(ctx context.Context) error {
	if err := p.click(ctx, cartLink); err != nil {
		return errors.Wrap(err, "open cart")
	}
	return p.waitURL(ctx, CartPath)
}

// CartCount - returns the number on the cart badge. The badge is not rendered
// for an empty cart.
func (p *InventoryPage) CartCount(ctx context.Context) (int, error) {
	badges, err := p.browser.FindAll(ctx, cartBadge)
	if err != nil {
		return 0, errors.Wrap(err, "find cart badge")
	}
	if len(badges) == 0 {
		return 0, nil
	}
	text, err := badges[0].Text(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "read cart badge")
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.Wrapf(err, "cart badge %q", text)
	}
	return n, nil
}

// SelectSort - picks a sort order by its visible label
func (p *InventoryPage) SelectSort(ctx context.Context, label string) error {
	dropdown, err := p.find(ctx, sortSelect)
	if err != nil {
		return err
	}
	p.logger.Infof("Sorting by %q", label)

	if sel, ok := dropdown.(textSelector); ok {
		return sel.SelectByText(ctx, label)
	}

	option, err := dropdown.FindChild(ctx, optionByText(label))
	if err != nil {
		return errors.Wrapf(err, "sort option %q", label)
	}
	if err := option.Click(ctx); err != nil {
		return errors.Wrapf(err, "select %q", label)
	}
	return nil
}

// ItemNames - returns the item names in display order
func (p *InventoryPage) ItemNames(ctx context.Context) ([]string, error) {
	return p.texts(ctx, itemNames)
}

// ItemPrices - returns the item prices in display order. A price that does
// not parse counts as zero.
func (p *InventoryPage) ItemPrices(ctx context.Context) ([]decimal.Decimal, error) {
	raw, err := p.texts(ctx, itemPrices)
	if err != nil {
		return nil, err
	}
	prices := make([]decimal.Decimal, 0, len(raw))
	for _, text := range raw {
		amount, err := entities.ParsePrice(text)
		if err != nil {
			p.logger.Warnf("Unreadable price %q: %v", text, err)
			amount = decimal.Zero
		}
		prices = append(prices, amount)
	}
	return prices, nil
}

// ItemDetails - reads an item card, trying its title link, then its add
// button, then a scan of every card by name
func (p *InventoryPage) ItemDetails(ctx context.Context, item CatalogItem) (entities.ItemDescriptor, error) {
	return p.resolver.Resolve(ctx,
		resolver.ByTitle(item.TitleLink()),
		resolver.ByAddButton(item.AddButton()),
		resolver.ByScan(item.Name),
	)
}

// ClickTitle - opens the detail page through the item name
func (p *InventoryPage) ClickTitle(ctx context.Context, item CatalogItem) error {
	if err := p.click(ctx, item.TitleLink()); err != nil {
		return errors.Wrapf(err, "open %s", item.Name)
	}
	return p.waitURL(ctx, DetailPath)
}

// ClickImage - opens the detail page through the item image
func (p *InventoryPage) ClickImage(ctx context.Context, item CatalogItem) error {
	if err := p.click(ctx, item.ImageLink()); err != nil {
		return errors.Wrapf(err, "open %s", item.Name)
	}
	return p.waitURL(ctx, DetailPath)
}
