package wizard

import (
	"fmt"

	"concert-pass/models"

	"github.com/shopspring/decimal"
)

// BookingSteps: tickets, attendees, payment.
const BookingSteps = 3

type ConcertSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func summarize(c models.Concert) ConcertSummary {
	return ConcertSummary{ID: c.ID, Name: c.Name, Location: c.Location, Date: c.Date, Time: c.Time}
}

// BookingState is the buyer's draft for one concert and ticket category.
type BookingState struct {
	InstanceID    string                `json:"instance_id"`
	Concert       ConcertSummary        `json:"concert"`
	Category      models.TicketCategory `json:"category"`
	Quantity      int                   `json:"quantity"`
	Attendees     []models.Attendee     `json:"attendees"`
	PaymentMethod models.PaymentMethod  `json:"payment_method"`
	Steps         Controller            `json:"steps"`
	Submission    Submission            `json:"submission"`
}

// NewBooking starts a booking for one ticket of the given category.
func NewBooking(instanceID string, concert models.Concert, categoryID int64) (BookingState, error) {
	category, ok := concert.Category(categoryID)
	if !ok || !category.Purchasable() {
		return BookingState{}, fmt.Errorf("%w: concert %d category %d", ErrCategoryUnavailable, concert.ID, categoryID)
	}

	return BookingState{
		InstanceID:    instanceID,
		Concert:       summarize(concert),
		Category:      category,
		Quantity:      1,
		Attendees:     ResetAttendees(1),
		PaymentMethod: models.PaymentBankTransfer,
		Steps:         NewController(BookingSteps),
		Submission:    Submission{Status: SubmissionIdle},
	}, nil
}

// Total is the selected category's selling price times the quantity.
func (s BookingState) Total() decimal.Decimal {
	return BookingTotal(s.Category.SellingPrice, s.Quantity)
}

// StepValid evaluates the required-field rule of one step.
func (s BookingState) StepValid(step Step) bool {
	switch step {
	case Step1:
		return s.Category.Purchasable() && s.Quantity >= 1 && s.Quantity <= s.Category.AvailableQuantity
	case Step2:
		return len(s.Attendees) == s.Quantity && AttendeesComplete(s.Attendees)
	case Step3:
		return s.PaymentMethod.Valid()
	}
	return false
}

// CanAdvance reports whether Next is enabled.
func (s BookingState) CanAdvance() bool {
	return !s.Steps.IsLast() && s.StepValid(s.Steps.Current)
}

// CanSubmit reports whether the submit action is enabled.
func (s BookingState) CanSubmit() bool {
	if !s.Steps.IsLast() || s.Submission.InFlight() || s.Submission.Status == SubmissionSucceeded {
		return false
	}
	for step := Step1; int(step) <= s.Steps.Total; step++ {
		if !s.StepValid(step) {
			return false
		}
	}
	return true
}

// Request snapshots the draft into the body of the create-booking call.
func (s BookingState) Request() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ConcertID:        s.Concert.ID,
		TicketCategoryID: s.Category.ID,
		Quantity:         s.Quantity,
		PaymentMethod:    s.PaymentMethod,
		Attendees:        append([]models.Attendee(nil), s.Attendees...),
	}
}

// ApplyBooking returns the state that results from action a. Gated transitions that
// are not allowed leave the state unchanged and return no error.
func ApplyBooking(s BookingState, a Action) (BookingState, error) {
	switch a.Type {
	case ActionNext:
		s.Steps = s.Steps.Next(s.StepValid(s.Steps.Current))

	case ActionBack:
		s.Steps = s.Steps.Back()

	case ActionSetQuantity:
		if !s.Steps.At(Step1) {
			return s, fmt.Errorf("%w: quantity is edited on step 1", ErrInvalidAction)
		}
		quantity := a.Quantity
		if limit := s.Category.AvailableQuantity; quantity > limit {
			quantity = limit
		}
		if quantity < 1 {
			quantity = 1
		}
		if quantity != s.Quantity {
			s.Quantity = quantity
			s.Attendees = ResetAttendees(quantity)
		}

	case ActionSetAttendee:
		if !s.Steps.At(Step2) {
			return s, fmt.Errorf("%w: attendees are edited on step 2", ErrInvalidAction)
		}
		attendees, err := SetAttendeeField(s.Attendees, a.Index, a.Field, a.Value)
		if err != nil {
			return s, err
		}
		s.Attendees = attendees

	case ActionSetPaymentMethod:
		if !s.Steps.At(Step3) {
			return s, fmt.Errorf("%w: payment method is chosen on step 3", ErrInvalidAction)
		}
		method := models.PaymentMethod(a.PaymentMethod)
		if !method.Valid() {
			return s, fmt.Errorf("%w: unknown payment method %q", ErrInvalidAction, a.PaymentMethod)
		}
		s.PaymentMethod = method

	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidAction, a.Type)
	}
	return s, nil
}
