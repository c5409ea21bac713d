package browser

import (
	"context"
	"io"
	"strings"
	"testing"

	"saucedemo_automation/application/resolver"
	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventoryURL = "https://www.saucedemo.com/inventory.html"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func loadInventory(t *testing.T) *SnapshotDocument {
	t.Helper()
	doc, err := LoadSnapshot("../../testdata/inventory.html", inventoryURL, testLogger())
	require.NoError(t, err)
	return doc
}

func TestSnapshotFindAll(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	cards, err := doc.FindAll(ctx, entities.ClassName("inventory_item"))
	require.NoError(t, err)
	assert.Len(t, cards, 6)

	names, err := doc.FindAll(ctx, entities.ClassName("inventory_item_name"))
	require.NoError(t, err)
	require.Len(t, names, 6)
	first, err := names[0].Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sauce Labs Backpack", first)
}

func TestSnapshotFindOneMissing(t *testing.T) {
	doc := loadInventory(t)

	_, err := doc.FindOne(context.Background(), entities.ID("add-to-cart-sauce-labs-backpack"))
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestSnapshotLocatorKinds(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		locator entities.Locator
		text    string
	}{
		{"id", entities.ID("remove-sauce-labs-backpack"), "Remove"},
		{"name", entities.Locator{By: entities.ByName, Value: "add-to-cart-sauce-labs-bike-light"}, "Add to cart"},
		{"class", entities.ClassName("title"), "Products"},
		{"xpath", entities.XPath("//span[@data-test='shopping-cart-badge']"), "2"},
		{"link text", entities.LinkText("All Items"), "All Items"},
		{"partial link text", entities.Locator{By: entities.ByPartialLinkText, Value: "Reset"}, "Reset App State"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := doc.FindOne(ctx, tt.locator)
			require.NoError(t, err)
			text, err := el.Text(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestSnapshotCSSUnsupported(t *testing.T) {
	doc := loadInventory(t)

	_, err := doc.FindOne(context.Background(), entities.CSS(".inventory_item"))
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedLocator)
}

func TestSnapshotReadOnly(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	button, err := doc.FindOne(ctx, entities.ID("add-to-cart-sauce-labs-bike-light"))
	require.NoError(t, err)

	assert.ErrorIs(t, button.Click(ctx), interfaces.ErrReadOnly)
	assert.ErrorIs(t, button.Type(ctx, "x"), interfaces.ErrReadOnly)
	assert.ErrorIs(t, doc.Navigate(ctx, "https://www.saucedemo.com/"), interfaces.ErrReadOnly)

	_, err = doc.Screenshot(ctx)
	assert.ErrorIs(t, err, interfaces.ErrReadOnly)
}

func TestSnapshotAttributeResolvesURL(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	img, err := doc.FindOne(ctx, entities.XPath("//img[@alt='Sauce Labs Backpack']"))
	require.NoError(t, err)

	src, err := img.Attribute(ctx, "src")
	require.NoError(t, err)
	assert.Equal(t, "https://www.saucedemo.com/static/media/sauce-backpack-1200x1500.0a0b85a3.jpg", src)

	alt, err := img.Attribute(ctx, "alt")
	require.NoError(t, err)
	assert.Equal(t, "Sauce Labs Backpack", alt)

	missing, err := img.Attribute(ctx, "title")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSnapshotIsDisplayed(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	menuLink, err := doc.FindOne(ctx, entities.ID("inventory_sidebar_link"))
	require.NoError(t, err)
	shown, err := menuLink.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, shown, "sidebar is hidden until the menu opens")

	burger, err := doc.FindOne(ctx, entities.ID("react-burger-menu-btn"))
	require.NoError(t, err)
	shown, err = burger.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.True(t, shown)
}

func TestSnapshotInlineStyleHidden(t *testing.T) {
	src := `<html><body><div style="display: none"><span id="a">x</span></div><span id="b" style="visibility:hidden">y</span></body></html>`
	doc, err := NewSnapshotDocument(strings.NewReader(src), "https://example.com/", testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		el, err := doc.FindOne(ctx, entities.ID(id))
		require.NoError(t, err)
		shown, err := el.IsDisplayed(ctx)
		require.NoError(t, err)
		assert.False(t, shown, id)
	}
}

func TestSnapshotPageInfo(t *testing.T) {
	doc := loadInventory(t)
	ctx := context.Background()

	title, err := doc.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", title)

	current, err := doc.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventoryURL, current)

	assert.NoError(t, doc.WaitForURL(ctx, "inventory", 0))
	assert.Error(t, doc.WaitForURL(ctx, "cart", 0))
	assert.NoError(t, doc.WaitFor(ctx, entities.ClassName("inventory_list"), 0))
	assert.ErrorIs(t, doc.WaitFor(ctx, entities.ID("checkout"), 0), interfaces.ErrNotFound)
}

func TestSnapshotResolve(t *testing.T) {
	doc := loadInventory(t)
	r := resolver.NewResolver(doc, resolver.InventoryFields, testLogger())

	details, err := r.Resolve(context.Background(),
		resolver.ByTitle(entities.ID("item_0_title_link")),
		resolver.ByAddButton(entities.ID("add-to-cart-sauce-labs-bike-light")),
	)
	require.NoError(t, err)
	assert.Equal(t, entities.ItemDescriptor{
		Name:        "Sauce Labs Bike Light",
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included.",
		Price:       "$9.99",
		Image:       "https://www.saucedemo.com/static/media/bike-light-1200x1500.37c843b0.jpg",
	}, details)
}

func TestSnapshotResolveFallsBackToScan(t *testing.T) {
	doc := loadInventory(t)
	r := resolver.NewResolver(doc, resolver.InventoryFields, testLogger())

	// Backpack is already in the cart so its add button is gone.
	details, err := r.Resolve(context.Background(),
		resolver.ByTitle(entities.ID("item_99_title_link")),
		resolver.ByAddButton(entities.ID("add-to-cart-sauce-labs-backpack")),
		resolver.ByScan("Backpack"),
	)
	require.NoError(t, err)
	assert.Equal(t, "Sauce Labs Backpack", details.Name)
	assert.Equal(t, "$29.99", details.Price)
}

func TestSnapshotResolveExhausted(t *testing.T) {
	doc := loadInventory(t)
	r := resolver.NewResolver(doc, resolver.InventoryFields, testLogger())

	_, err := r.Resolve(context.Background(),
		resolver.ByTitle(entities.ID("item_99_title_link")),
		resolver.ByScan("Sauce Labs Cap"),
	)
	require.ErrorIs(t, err, resolver.ErrResolutionExhausted)

	var exhausted *resolver.ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	require.Len(t, exhausted.Failures, 2)
	assert.Equal(t, "by-title", exhausted.Failures[0].Strategy)
	assert.Equal(t, "by-scan", exhausted.Failures[1].Strategy)
}
