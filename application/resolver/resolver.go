// Package resolver turns an item's display name into its descriptor by trying
// lookup strategies in order until one yields every attribute.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	// ErrResolutionExhausted matches the error returned when every strategy failed
	ErrResolutionExhausted = errors.New("resolution exhausted")

	// ErrNoStrategies is returned when Resolve is called without strategies
	ErrNoStrategies = errors.New("no strategies given")
)

// Fields locates the descriptor attributes relative to an item card
type Fields struct {
	Name        entities.Locator
	Description entities.Locator
	Price       entities.Locator
	Image       entities.Locator
	ImageAttr   string
}

// InventoryFields are the attribute locators of an inventory page card
var InventoryFields = Fields{
	Name:        entities.ClassName("inventory_item_name"),
	Description: entities.ClassName("inventory_item_desc"),
	Price:       entities.ClassName("inventory_item_price"),
	Image:       entities.XPath(".//div[contains(@class, 'inventory_item_img')]//img"),
	ImageAttr:   "src",
}

// StrategyFailure records why one strategy produced no descriptor
type StrategyFailure struct {
	Strategy string
	Err      error
}

func (f StrategyFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Strategy, f.Err)
}

// ExhaustedError carries one failure per attempted strategy, in order
type ExhaustedError struct {
	Failures []StrategyFailure
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("all %d strategies failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Is matches ErrResolutionExhausted
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrResolutionExhausted
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Reasons returns the per-strategy diagnostics
func (e *ExhaustedError) Reasons() []string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, f.String())
	}
	return reasons
}

// Resolver reads item descriptors from a document
type Resolver struct {
	doc    interfaces.Document
	fields Fields
	logger *logrus.Logger
}

// NewResolver - creates a resolver over doc reading the given attribute locators
func NewResolver(doc interfaces.Document, fields Fields, logger *logrus.Logger) *Resolver {
	return &Resolver{
		doc:    doc,
		fields: fields,
		logger: logger,
	}
}

// Resolve returns the descriptor produced by the first strategy that finds all
// four attributes. Later strategies are not queried once one succeeds.
func (r *Resolver) Resolve(ctx context.Context, strategies ...Strategy) (entities.ItemDescriptor, error) {
	if len(strategies) == 0 {
		return entities.ItemDescriptor{}, ErrNoStrategies
	}

	failures := make([]StrategyFailure, 0, len(strategies))
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return entities.ItemDescriptor{}, errors.Wrap(err, "resolve")
		}

		details, err := r.attempt(ctx, strategy)
		if err == nil {
			r.logger.Debugf("Resolved %q with %s", details.Name, strategy.Name())
			return details, nil
		}

		r.logger.Warnf("Strategy %s failed: %v", strategy.Name(), err)
		failures = append(failures, StrategyFailure{Strategy: strategy.Name(), Err: err})
	}

	return entities.ItemDescriptor{}, &ExhaustedError{Failures: failures}
}

// attempt runs one strategy from scratch; a partial read never leaks out
func (r *Resolver) attempt(ctx context.Context, strategy Strategy) (entities.ItemDescriptor, error) {
	cards, err := strategy.Candidates(ctx, r.doc)
	if err != nil {
		return entities.ItemDescriptor{}, err
	}

	var errs error
	for _, card := range cards {
		details, err := r.extract(ctx, card)
		if err == nil {
			return details, nil
		}
		errs = multierr.Append(errs, err)
	}
	if errs == nil {
		return entities.ItemDescriptor{}, errors.Wrap(interfaces.ErrNotFound, "no candidates")
	}
	return entities.ItemDescriptor{}, errs
}

func (r *Resolver) extract(ctx context.Context, card interfaces.Element) (entities.ItemDescriptor, error) {
	name, err := childText(ctx, card, r.fields.Name)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "name")
	}
	description, err := childText(ctx, card, r.fields.Description)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "description")
	}
	price, err := childText(ctx, card, r.fields.Price)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "price")
	}

	img, err := card.FindChild(ctx, r.fields.Image)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "image")
	}
	src, err := img.Attribute(ctx, r.fields.ImageAttr)
	if err != nil {
		return entities.ItemDescriptor{}, errors.Wrap(err, "image")
	}
	if src == "" {
		return entities.ItemDescriptor{}, errors.Wrapf(interfaces.ErrNotFound, "image has no %s", r.fields.ImageAttr)
	}

	return entities.ItemDescriptor{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       src,
	}, nil
}

func childText(ctx context.Context, parent interfaces.Element, locator entities.Locator) (string, error) {
	el, err := parent.FindChild(ctx, locator)
	if err != nil {
		return "", errors.Wrapf(err, "find %s", locator)
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", locator)
	}
	return strings.TrimSpace(text), nil
}
