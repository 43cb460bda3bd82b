package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ClickType selects the pointer action ClickMouse performs.
type ClickType string

const (
	// ClickTypeDown presses the button without releasing it.
	ClickTypeDown ClickType = "down"

	// ClickTypeUp releases a previously pressed button.
	ClickTypeUp ClickType = "up"

	// ClickTypeClick performs full down+up presses.
	ClickTypeClick ClickType = "click"
)

// ClickOptions configures ClickMouse.
type ClickOptions struct {
	// Button is "left", "right", or "middle". Empty means left.
	Button string

	// Type selects down, up, or click. Empty means click.
	Type ClickType

	// Count repeats the full down+up cycle for ClickTypeClick.
	// Values below 1 mean a single click.
	Count int

	// Modifiers are held for the duration of the action.
	Modifiers []string
}

// MoveMouse moves the pointer to (x, y) with the modifiers held.
func (s *Session) MoveMouse(x, y float64, modifiers ...string) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}
	return s.withModifiers(page.Keyboard(), modifiers, func() error {
		return page.Mouse().Move(x, y)
	})
}

// ClickMouse moves the pointer to (x, y) and performs the configured
// pointer action. For ClickTypeClick each repetition is a full press
// and release.
func (s *Session) ClickMouse(x, y float64, opts ClickOptions) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}

	button, err := mouseButton(opts.Button)
	if err != nil {
		return err
	}
	clickType := opts.Type
	if clickType == "" {
		clickType = ClickTypeClick
	}

	mouse := page.Mouse()
	return s.withModifiers(page.Keyboard(), opts.Modifiers, func() error {
		if err := mouse.Move(x, y); err != nil {
			return err
		}
		switch clickType {
		case ClickTypeDown:
			return mouse.Down(playwright.MouseDownOptions{Button: button})
		case ClickTypeUp:
			return mouse.Up(playwright.MouseUpOptions{Button: button})
		case ClickTypeClick:
			count := opts.Count
			if count < 1 {
				count = 1
			}
			for i := 0; i < count; i++ {
				if err := mouse.Down(playwright.MouseDownOptions{Button: button}); err != nil {
					return err
				}
				if err := mouse.Up(playwright.MouseUpOptions{Button: button}); err != nil {
					return err
				}
			}
			return nil
		default:
			return fmt.Errorf("unknown click type %q", clickType)
		}
	})
}

// DragMouse presses at the first path point, moves through every
// subsequent point while held, and releases. Paths shorter than two
// points fail before any pointer action is issued.
func (s *Session) DragMouse(path [][2]float64, modifiers ...string) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}
	if len(path) < 2 {
		return ErrDragPathTooShort
	}

	mouse := page.Mouse()
	return s.withModifiers(page.Keyboard(), modifiers, func() error {
		if err := mouse.Move(path[0][0], path[0][1]); err != nil {
			return err
		}
		if err := mouse.Down(); err != nil {
			return err
		}
		for _, point := range path[1:] {
			if err := mouse.Move(point[0], point[1]); err != nil {
				return err
			}
		}
		return mouse.Up()
	})
}

// Scroll moves the pointer to (x, y) first, then applies the wheel
// deltas there.
func (s *Session) Scroll(x, y, deltaX, deltaY float64, modifiers ...string) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}
	return s.withModifiers(page.Keyboard(), modifiers, func() error {
		if err := page.Mouse().Move(x, y); err != nil {
			return err
		}
		return page.Mouse().Wheel(deltaX, deltaY)
	})
}

// PressKey presses a key with the modifiers held. A positive hold keeps
// the key down for that duration before releasing; no other input
// primitive is safe to interleave while a key is held. All keys release
// in reverse order of press.
func (s *Session) PressKey(key string, hold time.Duration, modifiers ...string) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}

	kb := page.Keyboard()
	normalized := NormalizeKey(key)
	return s.withModifiers(kb, modifiers, func() error {
		if hold > 0 {
			if err := kb.Down(normalized); err != nil {
				return err
			}
			time.Sleep(hold)
			return kb.Up(normalized)
		}
		return kb.Press(normalized)
	})
}

// TypeText types the text into the current tab with the modifiers held.
func (s *Session) TypeText(text string, modifiers ...string) error {
	page, err := s.activePage()
	if err != nil {
		return err
	}
	return s.withModifiers(page.Keyboard(), modifiers, func() error {
		return page.Keyboard().Type(text)
	})
}

// withModifiers presses the modifier keys in order, runs fn, and
// releases the pressed modifiers in reverse order. Modifiers that were
// pressed before a failure are still released.
func (s *Session) withModifiers(kb Keyboard, modifiers []string, fn func() error) error {
	pressed := make([]string, 0, len(modifiers))
	release := func(firstErr error) error {
		for i := len(pressed) - 1; i >= 0; i-- {
			if err := kb.Up(pressed[i]); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for _, modifier := range modifiers {
		key := NormalizeKey(modifier)
		if err := kb.Down(key); err != nil {
			return release(fmt.Errorf("press modifier %s: %w", key, err))
		}
		pressed = append(pressed, key)
	}

	return release(fn())
}

func mouseButton(name string) (*playwright.MouseButton, error) {
	switch name {
	case "", "left":
		return playwright.MouseButtonLeft, nil
	case "right":
		return playwright.MouseButtonRight, nil
	case "middle":
		return playwright.MouseButtonMiddle, nil
	default:
		return nil, fmt.Errorf("unknown mouse button %q", name)
	}
}
