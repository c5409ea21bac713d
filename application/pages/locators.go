package pages

import (
	"fmt"
	"strings"

	"saucedemo_automation/domain/entities"
)

// CatalogItem is one product of the storefront with the locators that reach it
type CatalogItem struct {
	Name    string
	Slug    string
	ItemID  int
	Price   string
	Keyword string // expected substring of the description
}

// AddButton - add-to-cart button on the inventory page
func (c CatalogItem) AddButton() entities.Locator {
	return entities.ID("add-to-cart-" + c.Slug)
}

// RemoveButton - remove button on the inventory and cart pages
func (c CatalogItem) RemoveButton() entities.Locator {
	return entities.ID("remove-" + c.Slug)
}

// TitleLink - link wrapping the item name
func (c CatalogItem) TitleLink() entities.Locator {
	return entities.ID(fmt.Sprintf("item_%d_title_link", c.ItemID))
}

// ImageLink - link wrapping the item image
func (c CatalogItem) ImageLink() entities.Locator {
	return entities.ID(fmt.Sprintf("item_%d_img_link", c.ItemID))
}

// Catalog lists the storefront items in inventory order
var Catalog = []CatalogItem{
	{Name: "Sauce Labs Backpack", Slug: "sauce-labs-backpack", ItemID: 4, Price: "$29.99", Keyword: "carry.allTheThings()"},
	{Name: "Sauce Labs Bike Light", Slug: "sauce-labs-bike-light", ItemID: 0, Price: "$9.99", Keyword: "lighting modes"},
	{Name: "Sauce Labs Bolt T-Shirt", Slug: "sauce-labs-bolt-t-shirt", ItemID: 1, Price: "$15.99", Keyword: "bolt"},
	{Name: "Sauce Labs Fleece Jacket", Slug: "sauce-labs-fleece-jacket", ItemID: 5, Price: "$49.99", Keyword: "fleece"},
	{Name: "Sauce Labs Onesie", Slug: "sauce-labs-onesie", ItemID: 2, Price: "$7.99", Keyword: "onesie"},
	{Name: "Test.allTheThings() T-Shirt (Red)", Slug: "test.allthethings()-t-shirt-(red)", ItemID: 3, Price: "$15.99", Keyword: "automate a few tests"},
}

// LookupItem finds a catalog item by exact name or slug
func LookupItem(key string) (CatalogItem, bool) {
	for _, item := range Catalog {
		if item.Name == key || item.Slug == key {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Visible labels of the inventory sort dropdown
const (
	SortNameAsc   = "Name (A to Z)"
	SortNameDesc  = "Name (Z to A)"
	SortPriceAsc  = "Price (low to high)"
	SortPriceDesc = "Price (high to low)"
)

// SortOptions in dropdown order
var SortOptions = []string{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

// URL fragments identifying each page
const (
	InventoryPath = "inventory.html"
	DetailPath    = "inventory-item"
	CartPath      = "cart.html"
)

// login page
var (
	usernameInput = entities.ID("user-name")
	passwordInput = entities.ID("password")
	loginButton   = entities.ID("login-button")
	loginError    = entities.XPath("//h3[@data-test='error']")
)

// inventory page
var (
	pageTitle    = entities.ClassName("title")
	inventoryRow = entities.ClassName("inventory_item")
	itemNames    = entities.ClassName("inventory_item_name")
	itemPrices   = entities.ClassName("inventory_item_price")
	cartBadge    = entities.ClassName("shopping_cart_badge")
	cartLink     = entities.ClassName("shopping_cart_link")
	sortSelect   = entities.ClassName("product_sort_container")
)

// item detail page
var (
	detailName   = entities.ClassName("inventory_details_name")
	detailDesc   = entities.ClassName("inventory_details_desc")
	detailPrice  = entities.ClassName("inventory_details_price")
	detailImage  = entities.ClassName("inventory_details_img")
	detailAdd    = entities.ID("add-to-cart")
	detailRemove = entities.ID("remove")
	backButton   = entities.ID("back-to-products")
)

// cart page
var (
	cartRow          = entities.ClassName("cart_item")
	cartQuantity     = entities.ClassName("cart_quantity")
	cartRemove       = entities.XPath("//div[contains(concat(' ', normalize-space(@class), ' '), ' cart_item ')]//button[starts-with(@id, 'remove-')]")
	continueShopping = entities.ID("continue-shopping")
)

// header, sidebar and footer present on every logged-in page
var (
	menuButton   = entities.ID("react-burger-menu-btn")
	allItemsLink = entities.ID("inventory_sidebar_link")
	footer       = entities.ClassName("footer")
	footerCopy   = entities.ClassName("footer_copy")
)

// optionByText matches a dropdown option by its visible label
func optionByText(text string) entities.Locator {
	return entities.XPath(".//option[normalize-space(.)=" + entities.XPathLiteral(strings.TrimSpace(text)) + "]")
}

// cartItemTitle matches the name link of the cart row holding name
func cartItemTitle(name string) entities.Locator {
	return entities.XPath("//div[contains(concat(' ', normalize-space(@class), ' '), ' cart_item ')]" +
		"//div[contains(concat(' ', normalize-space(@class), ' '), ' inventory_item_name ') and normalize-space(.)=" +
		entities.XPathLiteral(name) + "]")
}
