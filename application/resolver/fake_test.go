package resolver

import (
	"context"
	"io"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// fakeDoc is an in-memory document keyed by exact locators
type fakeDoc struct {
	top     map[entities.Locator][]*fakeEl
	queries int
}

type fakeEl struct {
	doc      *fakeDoc
	text     string
	attrs    map[string]string
	children map[entities.Locator][]*fakeEl
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{top: make(map[entities.Locator][]*fakeEl)}
}

func (d *fakeDoc) add(loc entities.Locator, els ...*fakeEl) {
	for _, el := range els {
		el.doc = d
		for _, kids := range el.children {
			for _, kid := range kids {
				kid.doc = d
			}
		}
	}
	d.top[loc] = append(d.top[loc], els...)
}

func (d *fakeDoc) FindOne(_ context.Context, loc entities.Locator) (interfaces.Element, error) {
	d.queries++
	els := d.top[loc]
	if len(els) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return els[0], nil
}

func (d *fakeDoc) FindAll(_ context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	d.queries++
	out := make([]interfaces.Element, 0, len(d.top[loc]))
	for _, el := range d.top[loc] {
		out = append(out, el)
	}
	return out, nil
}

func (e *fakeEl) FindChild(_ context.Context, loc entities.Locator) (interfaces.Element, error) {
	e.doc.queries++
	kids := e.children[loc]
	if len(kids) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return kids[0], nil
}

func (e *fakeEl) FindChildren(_ context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	e.doc.queries++
	out := make([]interfaces.Element, 0, len(e.children[loc]))
	for _, kid := range e.children[loc] {
		out = append(out, kid)
	}
	return out, nil
}

func (e *fakeEl) Text(context.Context) (string, error) { return e.text, nil }

func (e *fakeEl) Attribute(_ context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeEl) Click(context.Context) error { return errors.New("fake: click") }
func (e *fakeEl) Type(context.Context, string) error { return errors.New("fake: type") }
func (e *fakeEl) IsDisplayed(context.Context) (bool, error) { return true, nil }

// card builds an item card; fields named in omit are left out
func card(d entities.ItemDescriptor, omit ...string) *fakeEl {
	skip := make(map[string]bool, len(omit))
	for _, o := range omit {
		skip[o] = true
	}

	c := &fakeEl{children: make(map[entities.Locator][]*fakeEl)}
	if !skip["name"] {
		c.children[InventoryFields.Name] = []*fakeEl{{text: d.Name}}
	}
	if !skip["description"] {
		c.children[InventoryFields.Description] = []*fakeEl{{text: d.Description}}
	}
	if !skip["price"] {
		c.children[InventoryFields.Price] = []*fakeEl{{text: d.Price}}
	}
	if !skip["image"] {
		c.children[InventoryFields.Image] = []*fakeEl{{attrs: map[string]string{"src": d.Image}}}
	}
	return c
}

// anchor returns an element whose container hop leads to c
func anchor(c *fakeEl) *fakeEl {
	return &fakeEl{children: map[entities.Locator][]*fakeEl{Container: {c}}}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// countingStrategy records how often it was asked for candidates
type countingStrategy struct {
	Strategy
	calls int
}

func (s *countingStrategy) Candidates(ctx context.Context, doc interfaces.Document) ([]interfaces.Element, error) {
	s.calls++
	return s.Strategy.Candidates(ctx, doc)
}
