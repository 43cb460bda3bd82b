package browser

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/AlanDuong07/screensense/pkg/vision"
)

// GetCoordinates captures a screenshot of the current tab and asks the
// session's configured vision processor where the instruction points.
// The processor's result is returned unmodified; any memoization
// happens inside the processor, never in the session.
func (s *Session) GetCoordinates(ctx context.Context, instruction string) ([]vision.Element, error) {
	page, err := s.activePage()
	if err != nil {
		return nil, err
	}

	shot, err := page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(shot)

	processor := s.processors.Resolve(s.cfg.Processor)
	return processor.Process(ctx, payload, instruction)
}
