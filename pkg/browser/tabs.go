package browser

import "fmt"

// Tab is one page within a session. Ids are allocated monotonically and
// never reused for the session's lifetime, so a stale id from a closed
// ordering can never silently address a different tab.
type Tab struct {
	ID    int
	Title string

	page Page
}

// ListTabs returns the current tab first (when one exists) followed by
// the background tabs in insertion order.
func (s *Session) ListTabs() []*Tab {
	tabs := make([]*Tab, 0, 1+len(s.others))
	if s.current != nil {
		tabs = append(tabs, s.current)
	}
	return append(tabs, s.others...)
}

// CurrentTab returns the current tab, or nil when the session has none.
func (s *Session) CurrentTab() *Tab {
	return s.current
}

// OpenTab creates a page, navigates it to url, and makes it the current
// tab. The previous current tab, if any, is demoted to the back of the
// background set. The new tab gets the next monotonic id.
func (s *Session) OpenTab(url string) (*Tab, error) {
	if s.newPage == nil {
		return nil, ErrNoBrowserContext
	}

	page, err := s.newPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if _, err := page.Goto(url); err != nil {
		page.Close()
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	title, _ := page.Title()

	tab := &Tab{ID: s.nextID, Title: title, page: page}
	s.nextID++
	if s.current != nil {
		s.others = append(s.others, s.current)
	}
	s.current = tab

	s.log.Debugf("opened tab %d (%s)", tab.ID, url)
	return tab, nil
}

// SwitchTab promotes the background tab with the given id to current
// and brings it to the foreground; the previous current tab joins the
// back of the background set. An id not present in the background set
// fails with ErrTabNotFound and leaves all tab state unchanged. The
// current tab's own id is not switchable-to.
func (s *Session) SwitchTab(id int) (*Tab, error) {
	idx := -1
	for i, t := range s.others {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}

	tab := s.others[idx]
	s.others = append(s.others[:idx], s.others[idx+1:]...)
	if s.current != nil {
		s.others = append(s.others, s.current)
	}
	s.current = tab

	if title, err := tab.page.Title(); err == nil {
		tab.Title = title
	}
	if err := tab.page.BringToFront(); err != nil {
		return tab, fmt.Errorf("bring tab %d to front: %w", id, err)
	}

	s.log.Debugf("switched to tab %d", id)
	return tab, nil
}
