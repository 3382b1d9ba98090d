package wizard

import "errors"

var (
	// ErrInvalidAction is returned for actions that are malformed or that target a
	// field not shown on the current step. Gated transitions never return it.
	ErrInvalidAction = errors.New("wizard: invalid action")

	// ErrCategoryUnavailable is returned when a booking is started for a category that
	// does not exist or is sold out.
	ErrCategoryUnavailable = errors.New("wizard: ticket category unavailable")
)
