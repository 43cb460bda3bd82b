// Package vision maps (screenshot, instruction) pairs to described
// screen coordinates through pluggable processor backends. A processor
// looks at a base64-encoded screenshot, interprets a natural-language
// instruction ("the blue Submit button"), and returns the points an
// agent can click.
//
// Backend failures never abort the caller: every processor shipped here
// converges misconfiguration, transport errors, and malformed model
// output to an empty element list plus a logged diagnostic. Session
// state-machine errors stay loud; vision errors degrade quietly.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
)

// Element is one actionable point on screen, described by the vision
// model. Coordinates are CSS pixels relative to the viewport origin.
type Element struct {
	Description string     `json:"description"`
	Coordinate  [2]float64 `json:"coordinate"`
}

// Processor resolves an instruction against a screenshot. The screenshot
// is the base64 PNG payload as captured from the page.
//
// Implementations in this package never return a non-nil error; the
// error is part of the signature so third-party processors can surface
// failures if their callers want them.
type Processor interface {
	Process(ctx context.Context, screenshot, instruction string) ([]Element, error)
}

// parseElements decodes and validates untrusted model output. The text
// must be a JSON array where every entry carries a string description
// and an exactly-two-number coordinate; anything else is rejected
// wholesale rather than partially salvaged.
func parseElements(text string) ([]Element, error) {
	var raw []struct {
		Description *string   `json:"description"`
		Coordinate  []float64 `json:"coordinate"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid element JSON: %w", err)
	}

	elements := make([]Element, 0, len(raw))
	for i, e := range raw {
		if e.Description == nil {
			return nil, fmt.Errorf("element %d: missing description", i)
		}
		if len(e.Coordinate) != 2 {
			return nil, fmt.Errorf("element %d: coordinate must have exactly 2 components, got %d", i, len(e.Coordinate))
		}
		elements = append(elements, Element{
			Description: *e.Description,
			Coordinate:  [2]float64{e.Coordinate[0], e.Coordinate[1]},
		})
	}
	return elements, nil
}

// cacheKeyPrefixLen is how much of the screenshot payload participates
// in the memoization key. Two distinct screenshots sharing the same
// 100-byte prefix and instruction collide; callers inherit that sharp
// edge from the caching contract.
const cacheKeyPrefixLen = 100

func cacheKey(screenshot, instruction string) string {
	if len(screenshot) > cacheKeyPrefixLen {
		screenshot = screenshot[:cacheKeyPrefixLen]
	}
	return screenshot + instruction
}
