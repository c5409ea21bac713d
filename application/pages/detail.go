package pages

import (
	"context"
	"strings"

	"saucedemo_automation/domain/entities"

	"github.com/go-faster/errors"
)

// DetailPage shows a single item
type DetailPage struct {
	*Base
}

// NewDetailPage - creates item detail page
func NewDetailPage(base *Base) *DetailPage {
	return &DetailPage{Base: base}
}

// IsOpen - checks whether the browser is on an item detail page
func (p *DetailPage) IsOpen(ctx context.Context) (bool, error) {
	u, err := p.browser.CurrentURL(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(u, DetailPath), nil
}

// Details - reads the displayed item attributes
func (p *DetailPage) Details(ctx context.Context) (entities.ItemDescriptor, error) {
	name, err := p.text(ctx, detailName)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "name")
	}
	description, err := p.text(ctx, detailDesc)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "description")
	}
	price, err := p.text(ctx, detailPrice)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "price")
	}
	img, err := p.find(ctx, detailImage)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "image")
	}
	src, err := img.Attribute(ctx, "src")
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "image")
	}

	return entities.ItemDescriptor{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       src,
	}, nil
}

// AddToCart - clicks the detail page add button
func (p *DetailPage) AddToCart(ctx context.Context) error {
	if err := p.click(ctx, detailAdd); err != nil {
		return errors.Wrap(err, "add from detail page")
	}
	p.logger.Info("Added item from detail page")
	return nil
}

// Remove - clicks the detail page remove button
func (p *DetailPage) Remove(ctx context.Context) error {
	if err := p.click(ctx, detailRemove); err != nil {
		return errors.Wrap(err, "remove from detail page")
	}
	p.logger.Info("Removed item from detail page")
	return nil
}

// BackToProducts - returns to the inventory page
func (p *DetailPage) BackToProducts(ctx context.Context) error {
	if err := p.click(ctx, backButton); err != nil {
		return errors.Wrap(err, "back to products")
	}
	return p.waitURL(ctx, InventoryPath)
}
