package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/AlanDuong07/screensense/pkg/config"
	"github.com/AlanDuong07/screensense/pkg/logging"
	"github.com/AlanDuong07/screensense/pkg/vision"
)

// Session owns one browser handle, one context, and the set of open
// tabs. It is exclusively owned by its creator and must not be shared
// across goroutines without external serialization.
type Session struct {
	cfg        *config.Config
	processors *vision.Registry
	log        *logging.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext

	current *Tab
	others  []*Tab
	nextID  int

	// newPage creates a page in the session's context. Set by Start;
	// replaceable in tests.
	newPage func() (Page, error)

	started bool
}

// NewSession creates an unstarted session. Browser settings are
// validated here, at construction, so a bad discriminant never reaches
// the driver. The session's vision registry falls back to a default
// processor built from cfg.Vision.
func NewSession(cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Browser.Validate(); err != nil {
		return nil, err
	}

	log, _ := logging.New("browser.session")
	vc := cfg.Vision
	registry := vision.NewRegistry(func() vision.Processor {
		return vision.NewAnthropic(vc.APIKey,
			vision.WithModel(vc.Model),
			vision.WithToolVersion(vc.ToolVersion),
			vision.WithMaxTokens(vc.MaxTokens),
			vision.WithCacheSize(vc.CacheSize),
		)
	})

	return &Session{
		cfg:        cfg,
		processors: registry,
		log:        log,
	}, nil
}

// Processors returns the session's vision processor registry, for
// registering alternative backends before use.
func (s *Session) Processors() *vision.Registry {
	return s.processors
}

// Start acquires a browser handle, creates one context (applying any
// configured user agent), and opens the first tab with id 0. A failed
// start tears down everything it acquired and leaves the session
// unstarted.
func (s *Session) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}

	browser, err := resolveBrowser(pw.Chromium, s.cfg.Browser)
	if err != nil {
		pw.Stop()
		return fmt.Errorf("acquire browser: %w", err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if s.cfg.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(s.cfg.UserAgent)
	}
	context, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return fmt.Errorf("create page: %w", err)
	}

	s.pw = pw
	s.browser = browser
	s.context = context
	s.newPage = func() (Page, error) {
		p, err := context.NewPage()
		if err != nil {
			return nil, err
		}
		return pwPage{p}, nil
	}
	s.current = &Tab{ID: 0, page: pwPage{page}}
	s.others = nil
	s.nextID = 1
	s.started = true

	s.log.Infof("session started (mode=%s)", s.cfg.Browser.Mode)
	return nil
}

// Close releases the browser and clears all tab state. Calling it on a
// never-started or already-closed session is a no-op.
func (s *Session) Close() error {
	if !s.started {
		return nil
	}

	err := s.browser.Close()
	if s.pw != nil {
		if stopErr := s.pw.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	s.pw = nil
	s.browser = nil
	s.context = nil
	s.current = nil
	s.others = nil
	s.newPage = nil
	s.started = false

	s.log.Infof("session closed")
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

// Started reports whether the session currently owns a browser handle.
func (s *Session) Started() bool {
	return s.started
}

// activePage returns the current tab's page or ErrNoActivePage.
func (s *Session) activePage() (Page, error) {
	if s.current == nil {
		return nil, ErrNoActivePage
	}
	return s.current.page, nil
}
