package browser

import (
	"testing"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func TestPlaywrightSelector(t *testing.T) {
	tests := []struct {
		locator  entities.Locator
		relative bool
		want     string
	}{
		{entities.ID("add-to-cart"), false, `css=[id="add-to-cart"]`},
		{entities.Locator{By: entities.ByName, Value: "user-name"}, false, `css=[name="user-name"]`},
		{entities.ClassName("inventory_item"), true, "css=.inventory_item"},
		{entities.TagName("img"), true, "css=img"},
		{entities.CSS("h3[data-test='error']"), false, "css=h3[data-test='error']"},
		{entities.XPath("./ancestor::div"), true, "xpath=./ancestor::div"},
		{entities.LinkText("All Items"), false, "xpath=//a[normalize-space(.)='All Items']"},
		{entities.LinkText("All Items"), true, "xpath=.//a[normalize-space(.)='All Items']"},
	}

	for _, tt := range tests {
		t.Run(tt.locator.String(), func(t *testing.T) {
			got, err := playwrightSelector(tt.locator, tt.relative)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaywrightSelectorUnknownStrategy(t *testing.T) {
	_, err := playwrightSelector(entities.Locator{By: "accessibility id", Value: "x"}, false)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedLocator)
}

func TestLookupError(t *testing.T) {
	loc := entities.ID("item_4_title_link")

	err := lookupError(&selenium.Error{Err: "no such element", Message: "Unable to locate element"}, loc)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	err = lookupError(errors.New("no such element: Unable to locate element"), loc)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	other := errors.New("invalid session id")
	err = lookupError(other, loc)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, interfaces.ErrNotFound)
}
