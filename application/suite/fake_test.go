package suite

import (
	"context"
	"io"
	"sync"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// fakeBrowser accepts every interaction and finds an element for any
// locator unless told otherwise
type fakeBrowser struct {
	mu        sync.Mutex
	url       string
	visited   []string
	clicks    []entities.Locator
	typed     map[entities.Locator]string
	waitErr   map[entities.Locator]error
	all       map[entities.Locator][]interfaces.Element
	resets    int
	shotErr   error
	findCalls int
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		typed:   map[entities.Locator]string{},
		waitErr: map[entities.Locator]error{},
		all:     map[entities.Locator][]interfaces.Element{},
	}
}

func (b *fakeBrowser) FindOne(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.findCalls++
	if err := b.waitErr[locator]; err != nil {
		return nil, err
	}
	return &fakeElement{b: b, loc: locator}, nil
}

func (b *fakeBrowser) FindAll(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.all[locator], nil
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.url = url
	b.visited = append(b.visited, url)
	return nil
}

func (b *fakeBrowser) CurrentURL(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.url, nil
}

func (b *fakeBrowser) Title(ctx context.Context) (string, error) { return "Swag Labs", nil }

func (b *fakeBrowser) WaitFor(ctx context.Context, locator entities.Locator, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.waitErr[locator]
}

func (b *fakeBrowser) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	return nil
}

func (b *fakeBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	if b.shotErr != nil {
		return nil, b.shotErr
	}
	return []byte("\x89PNG"), nil
}

func (b *fakeBrowser) ResetSession(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resets++
	return nil
}

func (b *fakeBrowser) Close() error { return nil }

type fakeElement struct {
	b    *fakeBrowser
	loc  entities.Locator
	text string
}

func (e *fakeElement) FindChild(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	return &fakeElement{b: e.b, loc: locator}, nil
}

func (e *fakeElement) FindChildren(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	return nil, nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) { return "", nil }

func (e *fakeElement) Click(ctx context.Context) error {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.b.clicks = append(e.b.clicks, e.loc)
	return nil
}

func (e *fakeElement) Type(ctx context.Context, text string) error {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.b.typed[e.loc] = text
	return nil
}

func (e *fakeElement) IsDisplayed(ctx context.Context) (bool, error) { return true, nil }

type memoryStore struct {
	reports     []*entities.RunReport
	screenshots map[string][]byte
	saveErr     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{screenshots: map[string][]byte{}}
}

func (s *memoryStore) SaveReport(report *entities.RunReport) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.reports = append(s.reports, report)
	return nil
}

func (s *memoryStore) LoadLatest() (*entities.RunReport, error) {
	if len(s.reports) == 0 {
		return nil, errors.New("empty")
	}
	return s.reports[len(s.reports)-1], nil
}

func (s *memoryStore) SaveScreenshot(reportID, scenario string, png []byte) (string, error) {
	path := reportID + "/" + scenario + ".png"
	s.screenshots[path] = png
	return path, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var testCreds = Credentials{Username: "standard_user", Password: "secret_sauce"}

func newTestSession(b interfaces.Browser) *Session {
	return NewSession(b, "https://www.saucedemo.com", testCreds, time.Second, quietLogger())
}
