// Package wizard holds the multi-step form state of the booking and listing flows.
//
// Every transition is a pure function from the current state and an action to the
// next state. Nothing here talks to the network or to storage, so the rules can be
// exercised without a browser or a backend.
package wizard

// Step is a 1-based wizard position.
type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
)

// Controller tracks the current step of an N-step wizard. The zero value is not
// usable; call NewController.
type Controller struct {
	Current Step `json:"current"`
	Total   int  `json:"total"`
}

func NewController(total int) Controller {
	if total < 1 {
		total = 1
	}
	return Controller{Current: Step1, Total: total}
}

// Next advances one step when valid holds and the current step is not the last.
// Otherwise it returns c unchanged.
func (c Controller) Next(valid bool) Controller {
	if !valid || c.IsLast() {
		return c
	}
	c.Current++
	return c
}

// Back moves one step backwards. It is a no-op on the first step.
func (c Controller) Back() Controller {
	if !c.CanGoBack() {
		return c
	}
	c.Current--
	return c
}

func (c Controller) CanGoBack() bool {
	return c.Current > Step1
}

func (c Controller) IsLast() bool {
	return int(c.Current) >= c.Total
}

// At reports whether the wizard is on step s.
func (c Controller) At(s Step) bool {
	return c.Current == s
}
