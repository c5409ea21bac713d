package resolver

import (
	"context"
	"strings"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
)

// Container climbs from any element inside an item card to the card itself.
// The class attribute is matched as a token since the storefront pads some
// class lists with spaces.
var Container = entities.XPath("./ancestor::div[contains(concat(' ', normalize-space(@class), ' '), ' inventory_item ')]")

// Items matches every item card on the inventory page
var Items = entities.ClassName("inventory_item")

// Strategy is one way of finding the item card(s) to read a descriptor from
type Strategy interface {
	// Name labels the strategy in diagnostics
	Name() string

	// Candidates returns the card elements to extract from, in preference order
	Candidates(ctx context.Context, doc interfaces.Document) ([]interfaces.Element, error)
}

type anchored struct {
	name      string
	anchor    entities.Locator
	container entities.Locator
}

// ByTitle finds the card through the item's title link
func ByTitle(title entities.Locator) Strategy {
	return anchored{name: "by-title", anchor: title, container: Container}
}

// ByAddButton finds the card through its add-to-cart button
func ByAddButton(add entities.Locator) Strategy {
	return anchored{name: "by-add-button", anchor: add, container: Container}
}

func (s anchored) Name() string { return s.name }

func (s anchored) Candidates(ctx context.Context, doc interfaces.Document) ([]interfaces.Element, error) {
	el, err := doc.FindOne(ctx, s.anchor)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", s.anchor)
	}
	card, err := el.FindChild(ctx, s.container)
	if err != nil {
		return nil, errors.Wrap(err, "find item container")
	}
	return []interfaces.Element{card}, nil
}

type scan struct {
	items   entities.Locator
	name    entities.Locator
	partial string
}

// ByScan walks every item card and keeps those whose name contains partial
func ByScan(partial string) Strategy {
	return scan{items: Items, name: InventoryFields.Name, partial: partial}
}

func (s scan) Name() string { return "by-scan" }

func (s scan) Candidates(ctx context.Context, doc interfaces.Document) ([]interfaces.Element, error) {
	cards, err := doc.FindAll(ctx, s.items)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", s.items)
	}

	var matched []interfaces.Element
	for _, card := range cards {
		nameEl, err := card.FindChild(ctx, s.name)
		if err != nil {
			continue
		}
		text, err := nameEl.Text(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(text, s.partial) {
			matched = append(matched, card)
		}
	}

	if len(matched) == 0 {
		return nil, errors.Wrapf(interfaces.ErrNotFound, "no item name contains %q among %d items", s.partial, len(cards))
	}
	return matched, nil
}
