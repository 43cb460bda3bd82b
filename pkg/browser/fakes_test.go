package browser

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/AlanDuong07/screensense/pkg/config"
)

// Recording fakes for the narrow driver views. Each fake appends a
// short op string so tests can assert exact dispatch order.

type fakeMouse struct {
	ops     []string
	failOn  string
	failErr error
}

func (m *fakeMouse) record(op string) error {
	m.ops = append(m.ops, op)
	if m.failOn != "" && op == m.failOn {
		return m.failErr
	}
	return nil
}

func (m *fakeMouse) Move(x, y float64, _ ...playwright.MouseMoveOptions) error {
	return m.record(fmt.Sprintf("move(%g,%g)", x, y))
}

func (m *fakeMouse) Down(_ ...playwright.MouseDownOptions) error { return m.record("down") }

func (m *fakeMouse) Up(_ ...playwright.MouseUpOptions) error { return m.record("up") }

func (m *fakeMouse) Wheel(dx, dy float64) error {
	return m.record(fmt.Sprintf("wheel(%g,%g)", dx, dy))
}

type fakeKeyboard struct {
	ops []string
}

func (k *fakeKeyboard) Down(key string) error {
	k.ops = append(k.ops, "down:"+key)
	return nil
}

func (k *fakeKeyboard) Up(key string) error {
	k.ops = append(k.ops, "up:"+key)
	return nil
}

func (k *fakeKeyboard) Press(key string, _ ...playwright.KeyboardPressOptions) error {
	k.ops = append(k.ops, "press:"+key)
	return nil
}

func (k *fakeKeyboard) Type(text string, _ ...playwright.KeyboardTypeOptions) error {
	k.ops = append(k.ops, "type:"+text)
	return nil
}

type fakePage struct {
	mouse    *fakeMouse
	keyboard *fakeKeyboard

	title      string
	screenshot []byte

	gotoURLs     []string
	gotoErr      error
	foregrounded int
	closed       bool
}

func newFakePage(title string) *fakePage {
	return &fakePage{
		mouse:      &fakeMouse{},
		keyboard:   &fakeKeyboard{},
		title:      title,
		screenshot: []byte("png-bytes"),
	}
}

func (p *fakePage) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	p.gotoURLs = append(p.gotoURLs, url)
	return nil, nil
}

func (p *fakePage) Title() (string, error) { return p.title, nil }

func (p *fakePage) BringToFront() error {
	p.foregrounded++
	return nil
}

func (p *fakePage) Screenshot(_ ...playwright.PageScreenshotOptions) ([]byte, error) {
	return p.screenshot, nil
}

func (p *fakePage) Mouse() Mouse { return p.mouse }

func (p *fakePage) Keyboard() Keyboard { return p.keyboard }

func (p *fakePage) Close(_ ...playwright.PageCloseOptions) error {
	p.closed = true
	return nil
}

// newTestSession builds a started session whose first tab and page
// factory are backed by fakes, skipping the playwright handshake.
func newTestSession(t *testing.T) *Session {
	t.Helper()

	s, err := NewSession(config.Default())
	require.NoError(t, err)

	s.newPage = func() (Page, error) { return newFakePage(""), nil }
	s.current = &Tab{ID: 0, page: newFakePage("first")}
	s.nextID = 1
	s.started = true
	return s
}

func currentFakePage(t *testing.T, s *Session) *fakePage {
	t.Helper()
	require.NotNil(t, s.current)
	page, ok := s.current.page.(*fakePage)
	require.True(t, ok)
	return page
}
