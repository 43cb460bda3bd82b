package browser

import "errors"

// Automation-precondition errors. These are always surfaced to callers:
// a session's state machine must fail deterministically, unlike vision
// lookups which degrade to empty results.
var (
	// ErrNotStarted is returned by operations requiring a started session.
	ErrNotStarted = errors.New("session not started")

	// ErrAlreadyStarted is returned by Start on a running session.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrNoActivePage is returned by input primitives and coordinate
	// lookups when the session has no current tab.
	ErrNoActivePage = errors.New("no active page")

	// ErrNoBrowserContext is returned by tab operations when the
	// session has no browser context.
	ErrNoBrowserContext = errors.New("no browser context")

	// ErrTabNotFound is returned by SwitchTab for ids not present in
	// the background tab set.
	ErrTabNotFound = errors.New("tab not found")

	// ErrDragPathTooShort is returned by DragMouse before any pointer
	// action when fewer than two path points are supplied.
	ErrDragPathTooShort = errors.New("drag path requires at least two points")
)
