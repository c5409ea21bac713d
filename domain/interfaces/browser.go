package interfaces

import (
	"context"
	"time"

	"saucedemo_automation/domain/entities"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a locator matches nothing
	ErrNotFound = errors.New("element not found")

	// ErrReadOnly is returned by backends that cannot interact with the page
	ErrReadOnly = errors.New("backend is read-only")

	// ErrUnsupportedLocator is returned when a backend cannot evaluate a locator strategy
	ErrUnsupportedLocator = errors.New("unsupported locator")
)

// Document defines read-only queries against the current page
type Document interface {
	// FindOne returns the first element matching the locator or ErrNotFound
	FindOne(ctx context.Context, locator entities.Locator) (Element, error)

	// FindAll returns every element matching the locator, possibly none
	FindAll(ctx context.Context, locator entities.Locator) ([]Element, error)
}

// Element is a handle to a single DOM element
type Element interface {
	// FindChild finds the first element matching the locator relative to this one
	FindChild(ctx context.Context, locator entities.Locator) (Element, error)

	// FindChildren finds every element matching the locator relative to this one
	FindChildren(ctx context.Context, locator entities.Locator) ([]Element, error)

	// Text returns the visible text of the element
	Text(ctx context.Context) (string, error)

	// Attribute returns the named attribute
	Attribute(ctx context.Context, name string) (string, error)

	// Click clicks on the element
	Click(ctx context.Context) error

	// Type replaces the element value with text
	Type(ctx context.Context, text string) error

	// IsDisplayed checks if the element is visible
	IsDisplayed(ctx context.Context) (bool, error)
}

// Browser defines the interface for browser automation
type Browser interface {
	Document

	// Navigate navigates to a URL
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the current page URL
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the current page title
	Title(ctx context.Context) (string, error)

	// WaitFor waits until the locator matches at least one element
	WaitFor(ctx context.Context, locator entities.Locator, timeout time.Duration) error

	// WaitForURL waits until the current URL contains fragment
	WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error

	// Screenshot takes a PNG screenshot of the page
	Screenshot(ctx context.Context) ([]byte, error)

	// ResetSession drops cookies and local storage so the next scenario starts logged out
	ResetSession(ctx context.Context) error

	// Close closes the browser
	Close() error
}
