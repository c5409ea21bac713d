package browser

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/antchfx/htmlquery"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// SnapshotDocument serves queries from a saved page source. It is read-only:
// clicks, typing, navigation and screenshots fail with ErrReadOnly.
type SnapshotDocument struct {
	root    *html.Node
	pageURL *url.URL
	logger  *logrus.Logger
}

// LoadSnapshot - parses an HTML file saved from pageURL
func LoadSnapshot(path, pageURL string, logger *logrus.Logger) (*SnapshotDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer f.Close()

	logger.Infof("Loading page snapshot: %s", path)
	return NewSnapshotDocument(f, pageURL, logger)
}

// NewSnapshotDocument - parses page source read from r
func NewSnapshotDocument(r io.Reader, pageURL string, logger *logrus.Logger) (*SnapshotDocument, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse snapshot")
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse page url %q", pageURL)
	}
	return &SnapshotDocument{root: root, pageURL: u, logger: logger}, nil
}

func (s *SnapshotDocument) query(node *html.Node, locator entities.Locator, relative bool) ([]*html.Node, error) {
	expr, ok := entities.ToXPath(locator, relative)
	if !ok {
		return nil, errors.Wrapf(interfaces.ErrUnsupportedLocator, "snapshot cannot evaluate %s", locator)
	}
	nodes, err := htmlquery.QueryAll(node, expr)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate %s", locator)
	}
	s.logger.Debugf("Snapshot query %s matched %d nodes", locator, len(nodes))
	return nodes, nil
}

func (s *SnapshotDocument) first(node *html.Node, locator entities.Locator, relative bool) (interfaces.Element, error) {
	nodes, err := s.query(node, locator, relative)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(interfaces.ErrNotFound, "%s", locator)
	}
	return &snapshotElement{doc: s, node: nodes[0]}, nil
}

func (s *SnapshotDocument) all(node *html.Node, locator entities.Locator, relative bool) ([]interfaces.Element, error) {
	nodes, err := s.query(node, locator, relative)
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &snapshotElement{doc: s, node: n})
	}
	return elements, nil
}

// FindOne - finds first element matching locator
func (s *SnapshotDocument) FindOne(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	return s.first(s.root, locator, false)
}

// FindAll - finds every element matching locator
func (s *SnapshotDocument) FindAll(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	return s.all(s.root, locator, false)
}

// Navigate - always fails, a snapshot cannot load other pages
func (s *SnapshotDocument) Navigate(ctx context.Context, url string) error {
	return errors.Wrapf(interfaces.ErrReadOnly, "navigate to %s", url)
}

// CurrentURL - returns the URL the snapshot was saved from
func (s *SnapshotDocument) CurrentURL(ctx context.Context) (string, error) {
	return s.pageURL.String(), nil
}

// Title - returns the text of the title element
func (s *SnapshotDocument) Title(ctx context.Context) (string, error) {
	node := htmlquery.FindOne(s.root, "//title")
	if node == nil {
		return "", nil
	}
	return normalizeText(htmlquery.InnerText(node)), nil
}

// WaitFor - checks presence once, the document never changes
func (s *SnapshotDocument) WaitFor(ctx context.Context, locator entities.Locator, timeout time.Duration) error {
	_, err := s.FindOne(ctx, locator)
	return err
}

// WaitForURL - checks the snapshot URL once
func (s *SnapshotDocument) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	if !strings.Contains(s.pageURL.String(), fragment) {
		return errors.Errorf("url %s does not contain %q", s.pageURL, fragment)
	}
	return nil
}

// Screenshot - not available for snapshots
func (s *SnapshotDocument) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, errors.Wrap(interfaces.ErrReadOnly, "screenshot")
}

// ResetSession - nothing to reset
func (s *SnapshotDocument) ResetSession(ctx context.Context) error { return nil }

// Close - nothing to release
func (s *SnapshotDocument) Close() error { return nil }

type snapshotElement struct {
	doc  *SnapshotDocument
	node *html.Node
}

func (e *snapshotElement) FindChild(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	return e.doc.first(e.node, locator, true)
}

func (e *snapshotElement) FindChildren(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	return e.doc.all(e.node, locator, true)
}

func (e *snapshotElement) Text(ctx context.Context) (string, error) {
	return normalizeText(htmlquery.InnerText(e.node)), nil
}

// Attribute resolves src and href against the page URL the way a live
// browser reports them.
func (e *snapshotElement) Attribute(ctx context.Context, name string) (string, error) {
	value := htmlquery.SelectAttr(e.node, name)
	if value == "" || (name != "src" && name != "href") {
		return value, nil
	}
	ref, err := url.Parse(value)
	if err != nil {
		return value, nil
	}
	return e.doc.pageURL.ResolveReference(ref).String(), nil
}

func (e *snapshotElement) Click(ctx context.Context) error {
	return errors.Wrap(interfaces.ErrReadOnly, "click")
}

func (e *snapshotElement) Type(ctx context.Context, text string) error {
	return errors.Wrap(interfaces.ErrReadOnly, "type")
}

// IsDisplayed treats an element as visible unless it or an ancestor is
// hidden through the hidden attribute or an inline display:none.
func (e *snapshotElement) IsDisplayed(ctx context.Context) (bool, error) {
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Key == "hidden" {
				return false, nil
			}
			if attr.Key == "style" {
				style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
				if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// normalizeText collapses whitespace runs the way rendered text reads
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ interfaces.Browser = (*SnapshotDocument)(nil)
