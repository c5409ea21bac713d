package pages

import (
	"context"
	"strconv"

	"saucedemo_automation/application/resolver"
	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
)

// CartPage lists the items added to the cart
type CartPage struct {
	*Base
}

// NewCartPage - creates cart page
func NewCartPage(base *Base) *CartPage {
	return &CartPage{Base: base}
}

// WaitLoaded - waits until at least one cart row is present
func (p *CartPage) WaitLoaded(ctx context.Context) error {
	if err := p.browser.WaitFor(ctx, cartRow, p.timeout); err != nil {
		return errors.Wrap(err, "cart has no items")
	}
	return nil
}

// Items - reads every cart row
func (p *CartPage) Items(ctx context.Context) ([]entities.CartItem, error) {
	rows, err := p.browser.FindAll(ctx, cartRow)
	if err != nil {
		return nil, errors.Wrap(err, "find cart rows")
	}

	items := make([]entities.CartItem, 0, len(rows))
	for i, row := range rows {
		item, err := readCartRow(ctx, row)
		if err != nil {
			return nil, errors.Wrapf(err, "cart row %d", i)
		}
		items = append(items, item)
	}
	return items, nil
}

func readCartRow(ctx context.Context, row interfaces.Element) (entities.CartItem, error) {
	fields := resolver.InventoryFields
	read := func(l entities.Locator) (string, error) {
		el, err := row.FindChild(ctx, l)
		if err != nil {
			return "", err
		}
		return el.Text(ctx)
	}

	name, err := read(fields.Name)
	if err != nil {
		return entities.CartItem{}, errors.Wrap(err, "name")
	}
	description, err := read(fields.Description)
	if err != nil {
		return entities.CartItem{}, errors.Wrap(err, "description")
	}
	price, err := read(fields.Price)
	if err != nil {
		return entities.CartItem{}, errors.Wrap(err, "price")
	}
	qty, err := read(cartQuantity)
	if err != nil {
		return entities.CartItem{}, errors.Wrap(err, "quantity")
	}
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		return entities.CartItem{}, errors.Wrapf(err, "quantity %q", qty)
	}

	return entities.CartItem{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

// Item - returns the cart row for name
func (p *CartPage) Item(ctx context.Context, name string) (entities.CartItem, bool, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return entities.CartItem{}, false, err
	}
	for _, item := range items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return entities.CartItem{}, false, nil
}

// IsEmpty - checks that no cart rows remain
func (p *CartPage) IsEmpty(ctx context.Context) (bool, error) {
	n, err := p.count(ctx, cartRow)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// RemoveAll - clicks every remove button in the cart. Rows disappear as they
// are removed so the first remaining button is looked up each time.
func (p *CartPage) RemoveAll(ctx context.Context) error {
	n, err := p.count(ctx, cartRemove)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := p.click(ctx, cartRemove); err != nil {
			return errors.Wrapf(err, "remove cart row %d of %d", i+1, n)
		}
	}
	p.logger.Infof("Removed %d items from the cart", n)
	return nil
}

// ClickItem - opens the detail page of a cart row by its name
func (p *CartPage) ClickItem(ctx context.Context, name string) error {
	if err := p.click(ctx, cartItemTitle(name)); err != nil {
		return errors.Wrapf(err, "open %s from cart", name)
	}
	return p.waitURL(ctx, DetailPath)
}

// ContinueShopping - returns to the inventory page
func (p *CartPage) ContinueShopping(ctx context.Context) error {
	if err := p.click(ctx, continueShopping); err != nil {
		return errors.Wrap(err, "continue shopping")
	}
	return p.waitURL(ctx, InventoryPath)
}
