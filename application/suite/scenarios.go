// Package suite holds the storefront UI scenarios and the runner that executes
// them against a browser session.
package suite

import (
	"context"
	"path"
	"strings"
	"time"

	"saucedemo_automation/application/pages"
	"saucedemo_automation/domain/entities"

	"github.com/go-faster/errors"
)

// ErrCheckFailed marks a scenario assertion that did not hold
var ErrCheckFailed = errors.New("check failed")

// Scenario is one end-to-end check. Run starts on the inventory page of a
// freshly signed in session.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *Session) error
}

func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return errors.Wrapf(ErrCheckFailed, format, args...)
}

// eventually polls cond until it holds, for UI state that settles after a click
func eventually(ctx context.Context, timeout time.Duration, cond func() (bool, error)) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := cond()
		if err != nil || ok {
			return ok, err
		}
		select {
		case <-ctx.Done():
			return false, nil
		case <-ticker.C:
		}
	}
}

const settleTimeout = 3 * time.Second

// sortOption pairs a dropdown label with the order it must produce
type sortOption struct {
	key   string
	label string
	check func(ctx context.Context, inv *pages.InventoryPage) (bool, error)
}

var sortOptions = []sortOption{
	{"name-az", pages.SortNameAsc, func(ctx context.Context, inv *pages.InventoryPage) (bool, error) {
		names, err := inv.ItemNames(ctx)
		return pages.IsSortedAscending(names), err
	}},
	{"name-za", pages.SortNameDesc, func(ctx context.Context, inv *pages.InventoryPage) (bool, error) {
		names, err := inv.ItemNames(ctx)
		return pages.IsSortedDescending(names), err
	}},
	{"price-lohi", pages.SortPriceAsc, func(ctx context.Context, inv *pages.InventoryPage) (bool, error) {
		prices, err := inv.ItemPrices(ctx)
		return pages.PricesAscending(prices), err
	}},
	{"price-hilo", pages.SortPriceDesc, func(ctx context.Context, inv *pages.InventoryPage) (bool, error) {
		prices, err := inv.ItemPrices(ctx)
		return pages.PricesDescending(prices), err
	}},
}

// GlobalPages are the logged-in pages that carry the header and footer
var GlobalPages = []string{"inventory", "cart", "checkout-step-one", "checkout-step-two"}

// Catalogue returns every scenario in run order
func Catalogue() []Scenario {
	var all []Scenario

	perItem := []struct {
		prefix      string
		description string
		run         func(ctx context.Context, s *Session, item pages.CatalogItem) error
	}{
		{"title-navigation", "item title opens a detail page with matching details", titleNavigation},
		{"image-navigation", "item image opens a detail page with matching details", imageNavigation},
		{"detail-add-remove", "detail page add and remove update the cart badge", detailAddRemove},
		{"cart-verification", "added item shows in the cart with its price and description", cartVerification},
		{"cart-item-navigation", "cart item opens its detail page and back leads to the inventory", cartItemNavigation},
	}
	for _, group := range perItem {
		for _, item := range pages.Catalog {
			all = append(all, Scenario{
				Name:        group.prefix + "/" + item.Slug,
				Description: group.description + ": " + item.Name,
				Run: func(ctx context.Context, s *Session) error {
					return group.run(ctx, s, item)
				},
			})
		}
	}

	all = append(all,
		Scenario{Name: "item-count", Description: "inventory lists every catalog item", Run: itemCount},
		Scenario{Name: "add-all-remove-all", Description: "adding and removing every item from the inventory", Run: addAllRemoveAll},
		Scenario{Name: "multi-item-workflow", Description: "several items reach the cart and can all be removed", Run: multiItemWorkflow},
		Scenario{Name: "back-to-products", Description: "detail page back button returns to the inventory", Run: backToProducts},
		Scenario{Name: "direct-locator-navigation", Description: "raw locators navigate to a detail page and back", Run: directLocatorNavigation},
	)

	for _, opt := range sortOptions {
		all = append(all, Scenario{
			Name:        "sort/" + opt.key,
			Description: "sorting by " + opt.label,
			Run: func(ctx context.Context, s *Session) error {
				return sortBy(ctx, s, opt)
			},
		})
	}

	for _, page := range GlobalPages {
		all = append(all, Scenario{
			Name:        "global-elements/" + page,
			Description: "header, footer and menu on " + page,
			Run: func(ctx context.Context, s *Session) error {
				return globalElements(ctx, s, "/"+page+".html")
			},
		})
	}

	all = append(all, Scenario{Name: "known-item-verification", Description: "backpack in the cart matches its known details", Run: knownItemVerification})
	return all
}

// Select returns the scenarios matching filter. The filter is a comma
// separated list of exact names, group prefixes ("sort") or glob patterns
// ("title-navigation/*-t-shirt*"). Empty or "all" selects everything.
func Select(scenarios []Scenario, filter string) ([]Scenario, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "all" {
		return scenarios, nil
	}

	patterns := strings.Split(filter, ",")
	var selected []Scenario
	for _, sc := range scenarios {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			ok, err := path.Match(p, sc.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "bad filter %q", p)
			}
			if ok || sc.Name == p || strings.HasPrefix(sc.Name, p+"/") {
				selected = append(selected, sc)
				break
			}
		}
	}
	if len(selected) == 0 {
		return nil, errors.Errorf("no scenario matches %q", filter)
	}
	return selected, nil
}

func openAndCompare(ctx context.Context, s *Session, item pages.CatalogItem, open func(context.Context, pages.CatalogItem) error) error {
	listed, err := s.Inventory.ItemDetails(ctx, item)
	if err != nil {
		return errors.Wrap(err, "read inventory card")
	}
	if err := open(ctx, item); err != nil {
		return err
	}
	onDetail, err := s.Detail.IsOpen(ctx)
	if err != nil {
		return err
	}
	if err := check(onDetail, "should be on the detail page for %s", item.Name); err != nil {
		return err
	}
	shown, err := s.Detail.Details(ctx)
	if err != nil {
		return errors.Wrap(err, "read detail page")
	}
	return check(listed.Equal(shown), "details should match for %s: inventory %+v, detail %+v", item.Name, listed, shown)
}

func titleNavigation(ctx context.Context, s *Session, item pages.CatalogItem) error {
	return openAndCompare(ctx, s, item, s.Inventory.ClickTitle)
}

func imageNavigation(ctx context.Context, s *Session, item pages.CatalogItem) error {
	return openAndCompare(ctx, s, item, s.Inventory.ClickImage)
}

func waitCartCount(ctx context.Context, s *Session, want int) (int, error) {
	var got int
	_, err := eventually(ctx, settleTimeout, func() (bool, error) {
		n, err := s.Inventory.CartCount(ctx)
		got = n
		return n == want, err
	})
	return got, err
}

func detailAddRemove(ctx context.Context, s *Session, item pages.CatalogItem) error {
	if err := s.Inventory.ClickTitle(ctx, item); err != nil {
		return err
	}
	initial, err := s.Inventory.CartCount(ctx)
	if err != nil {
		return err
	}

	if err := s.Detail.AddToCart(ctx); err != nil {
		return err
	}
	got, err := waitCartCount(ctx, s, initial+1)
	if err != nil {
		return err
	}
	if err := check(got == initial+1, "cart count should increase by 1 for %s, got %d from %d", item.Name, got, initial); err != nil {
		return err
	}

	if err := s.Detail.Remove(ctx); err != nil {
		return err
	}
	got, err = waitCartCount(ctx, s, initial)
	if err != nil {
		return err
	}
	return check(got == initial, "cart count should return to %d for %s, got %d", initial, item.Name, got)
}

func addAndOpenCart(ctx context.Context, s *Session, items ...pages.CatalogItem) error {
	for _, item := range items {
		if err := s.Inventory.AddItem(ctx, item.AddButton()); err != nil {
			return err
		}
	}
	if _, err := waitCartCount(ctx, s, len(items)); err != nil {
		return err
	}
	if err := s.Inventory.OpenCart(ctx); err != nil {
		return err
	}
	return s.Cart.WaitLoaded(ctx)
}

func cartVerification(ctx context.Context, s *Session, item pages.CatalogItem) error {
	if err := addAndOpenCart(ctx, s, item); err != nil {
		return err
	}
	line, ok, err := s.Cart.Item(ctx, item.Name)
	if err != nil {
		return err
	}
	if err := check(ok, "%s should be in the cart", item.Name); err != nil {
		return err
	}
	if err := check(line.Price == item.Price, "expected price %s for %s, got %s", item.Price, item.Name, line.Price); err != nil {
		return err
	}
	return check(strings.Contains(line.Description, item.Keyword), "expected description of %s to contain %q", item.Name, item.Keyword)
}

func cartItemNavigation(ctx context.Context, s *Session, item pages.CatalogItem) error {
	if err := addAndOpenCart(ctx, s, item); err != nil {
		return err
	}
	if err := s.Cart.ClickItem(ctx, item.Name); err != nil {
		return err
	}
	onDetail, err := s.Detail.IsOpen(ctx)
	if err != nil {
		return err
	}
	if err := check(onDetail, "should reach the detail page of %s from the cart", item.Name); err != nil {
		return err
	}
	if err := s.Detail.BackToProducts(ctx); err != nil {
		return err
	}
	return onInventory(ctx, s)
}

func onInventory(ctx context.Context, s *Session) error {
	u, err := s.Browser.CurrentURL(ctx)
	if err != nil {
		return err
	}
	return check(strings.Contains(u, pages.InventoryPath), "should be back on the inventory page, got %s", u)
}

func itemCount(ctx context.Context, s *Session) error {
	title, err := s.Inventory.Title(ctx)
	if err != nil {
		return err
	}
	if err := check(title == "Products", "page title should be Products, got %q", title); err != nil {
		return err
	}
	n, err := s.Inventory.ItemCount(ctx)
	if err != nil {
		return err
	}
	return check(n == len(pages.Catalog), "expected %d items, found %d", len(pages.Catalog), n)
}

func addAllRemoveAll(ctx context.Context, s *Session) error {
	if err := s.Inventory.AddAll(ctx); err != nil {
		return err
	}
	got, err := waitCartCount(ctx, s, len(pages.Catalog))
	if err != nil {
		return err
	}
	if err := check(got == len(pages.Catalog), "cart should hold %d items, got %d", len(pages.Catalog), got); err != nil {
		return err
	}
	if err := s.Inventory.RemoveAll(ctx); err != nil {
		return err
	}
	got, err = waitCartCount(ctx, s, 0)
	if err != nil {
		return err
	}
	return check(got == 0, "cart should be empty, got %d", got)
}

func multiItemWorkflow(ctx context.Context, s *Session) error {
	picked := pages.Catalog[:3]
	if err := addAndOpenCart(ctx, s, picked...); err != nil {
		return err
	}

	lines, err := s.Cart.Items(ctx)
	if err != nil {
		return err
	}
	if err := check(len(lines) == len(picked), "cart should have %d items, got %d", len(picked), len(lines)); err != nil {
		return err
	}
	inCart := make(map[string]bool, len(lines))
	for _, line := range lines {
		inCart[line.Name] = true
	}
	for _, item := range picked {
		if err := check(inCart[item.Name], "%s should be in the cart", item.Name); err != nil {
			return err
		}
	}

	if err := s.Cart.RemoveAll(ctx); err != nil {
		return err
	}
	empty, err := eventually(ctx, settleTimeout, func() (bool, error) {
		return s.Cart.IsEmpty(ctx)
	})
	if err != nil {
		return err
	}
	return check(empty, "cart should be empty after removing all items")
}

func backToProducts(ctx context.Context, s *Session) error {
	item := pages.Catalog[0]
	if err := s.Inventory.ClickTitle(ctx, item); err != nil {
		return err
	}
	onDetail, err := s.Detail.IsOpen(ctx)
	if err != nil {
		return err
	}
	if err := check(onDetail, "should be on the detail page"); err != nil {
		return err
	}
	if err := s.Detail.BackToProducts(ctx); err != nil {
		return err
	}
	return onInventory(ctx, s)
}

// directLocatorNavigation drives the browser with raw locators, bypassing the
// page objects
func directLocatorNavigation(ctx context.Context, s *Session) error {
	title, err := s.Browser.FindOne(ctx, pages.Catalog[0].TitleLink())
	if err != nil {
		return err
	}
	if err := title.Click(ctx); err != nil {
		return err
	}
	if err := s.Browser.WaitForURL(ctx, pages.DetailPath, settleTimeout); err != nil {
		return errors.Wrap(err, "should be on the detail page")
	}

	back, err := s.Browser.FindOne(ctx, entities.ID("back-to-products"))
	if err != nil {
		return err
	}
	if err := back.Click(ctx); err != nil {
		return err
	}
	if err := s.Browser.WaitForURL(ctx, pages.InventoryPath, settleTimeout); err != nil {
		return errors.Wrap(err, "should be back on the inventory page")
	}
	return nil
}

func sortBy(ctx context.Context, s *Session, opt sortOption) error {
	if err := s.Inventory.SelectSort(ctx, opt.label); err != nil {
		return err
	}
	ok, err := eventually(ctx, settleTimeout, func() (bool, error) {
		return opt.check(ctx, s.Inventory)
	})
	if err != nil {
		return err
	}
	return check(ok, "items should be ordered by %s", opt.label)
}

func globalElements(ctx context.Context, s *Session, pagePath string) error {
	if err := s.Open(ctx, pagePath); err != nil {
		return err
	}

	checks := []struct {
		what string
		fn   func(context.Context) (bool, error)
	}{
		{"menu button", s.Chrome.MenuButtonDisplayed},
		{"cart button", s.Chrome.CartButtonDisplayed},
		{"footer", s.Chrome.FooterDisplayed},
		{"copyright", s.Chrome.CopyrightDisplayed},
	}
	for _, c := range checks {
		shown, err := c.fn(ctx)
		if err != nil {
			return errors.Wrap(err, c.what)
		}
		if err := check(shown, "%s not displayed on %s", c.what, pagePath); err != nil {
			return err
		}
	}

	if err := s.Chrome.OpenMenu(ctx); err != nil {
		return err
	}
	if err := s.Chrome.GoToAllItems(ctx); err != nil {
		return err
	}
	return onInventory(ctx, s)
}

func knownItemVerification(ctx context.Context, s *Session) error {
	backpack := pages.Catalog[0]
	if err := addAndOpenCart(ctx, s, backpack); err != nil {
		return err
	}

	lines, err := s.Cart.Items(ctx)
	if err != nil {
		return err
	}
	if err := check(len(lines) == 1, "expected 1 item in the cart, found %d", len(lines)); err != nil {
		return err
	}
	line := lines[0]
	if err := check(line.Name == "Sauce Labs Backpack", "expected name Sauce Labs Backpack, got %q", line.Name); err != nil {
		return err
	}
	if err := check(strings.Contains(line.Description, "carry.allTheThings()"), "expected description to contain carry.allTheThings(), got %q", line.Description); err != nil {
		return err
	}
	return check(line.Price == "$29.99", "expected price $29.99, got %s", line.Price)
}
