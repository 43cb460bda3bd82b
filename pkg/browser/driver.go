package browser

import (
	"github.com/playwright-community/playwright-go"

	"github.com/AlanDuong07/screensense/pkg/config"
)

// Narrow views over the Playwright driver. Session logic depends on
// these instead of the full driver interfaces so tab and input tests
// can substitute recording fakes.

// Mouse is the pointer surface input dispatch needs.
type Mouse interface {
	Move(x float64, y float64, options ...playwright.MouseMoveOptions) error
	Down(options ...playwright.MouseDownOptions) error
	Up(options ...playwright.MouseUpOptions) error
	Wheel(deltaX float64, deltaY float64) error
}

// Keyboard is the key-dispatch surface input dispatch needs.
type Keyboard interface {
	Down(key string) error
	Up(key string) error
	Press(key string, options ...playwright.KeyboardPressOptions) error
	Type(text string, options ...playwright.KeyboardTypeOptions) error
}

// Page is the per-tab surface the session needs.
type Page interface {
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	Title() (string, error)
	BringToFront() error
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
	Mouse() Mouse
	Keyboard() Keyboard
	Close(options ...playwright.PageCloseOptions) error
}

// pwPage adapts a playwright.Page to the narrow Page view. Playwright's
// Mouse and Keyboard interfaces already satisfy the narrow views, so
// only the two accessor signatures need adapting.
type pwPage struct {
	playwright.Page
}

func (p pwPage) Mouse() Mouse       { return p.Page.Mouse() }
func (p pwPage) Keyboard() Keyboard { return p.Page.Keyboard() }

// connector is the slice of playwright.BrowserType used to acquire a
// browser handle.
type connector interface {
	Connect(url string, options ...playwright.BrowserTypeConnectOptions) (playwright.Browser, error)
	ConnectOverCDP(endpointURL string, options ...playwright.BrowserTypeConnectOverCDPOptions) (playwright.Browser, error)
	Launch(options ...playwright.BrowserTypeLaunchOptions) (playwright.Browser, error)
}

// resolveBrowser acquires a browser handle for the given settings:
// remote websocket attach, then remote CDP attach, then local launch
// with any configured executable path and proxy, then a default launch.
func resolveBrowser(c connector, settings config.BrowserSettings) (playwright.Browser, error) {
	if settings.Mode == config.ModeRemote {
		if settings.Remote.WSSURL != "" {
			return c.Connect(settings.Remote.WSSURL)
		}
		if settings.Remote.CDPURL != "" {
			return c.ConnectOverCDP(settings.Remote.CDPURL)
		}
		return c.Launch()
	}

	opts := playwright.BrowserTypeLaunchOptions{}
	if settings.Local.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(settings.Local.ExecutablePath)
	}
	if settings.Local.ProxyServer != "" {
		opts.Proxy = &playwright.Proxy{Server: settings.Local.ProxyServer}
	}
	return c.Launch(opts)
}
