// Package browser drives a Chromium browser purely by screen
// coordinates through Playwright. There are no DOM selectors anywhere
// in the API: "where is X on screen" is answered by a pluggable vision
// processor that inspects a screenshot, and everything else is pointer
// and keyboard dispatch at the coordinates it returns.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Session: owns one browser handle, one context, and the tab set
//  2. Tabs: monotonically-numbered pages, exactly one of which is current
//  3. Vision registry: named processor lookup for coordinate resolution
//
// # Session Lifecycle
//
//  1. Create: NewSession validates settings and wires the vision registry
//  2. Start: acquires a browser (remote attach or local launch), opens
//     the first tab
//  3. Use: input primitives, tab operations, and coordinate lookups
//  4. Close: releases the browser and clears all tab state; idempotent
//
// # Concurrency
//
// A Session performs no internal locking around tab mutation. Browser
// operations are issued in caller order; concurrent OpenTab/SwitchTab
// calls can corrupt the tab ordering. Callers must serialize access.
//
// # Example Usage
//
//	cfg := config.Default()
//	session, err := browser.NewSession(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := session.Start(); err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	tab, err := session.OpenTab("https://example.com")
//	elements, err := session.GetCoordinates(ctx, "the search box")
//	if len(elements) > 0 {
//	    x, y := elements[0].Coordinate[0], elements[0].Coordinate[1]
//	    err = session.ClickMouse(x, y, browser.ClickOptions{})
//	}
package browser
