package wizard

// ActionType names a user interaction with a wizard.
type ActionType string

const (
	ActionNext ActionType = "next"
	ActionBack ActionType = "back"

	ActionSetQuantity      ActionType = "set_quantity"
	ActionSetAttendee      ActionType = "set_attendee"
	ActionSetPaymentMethod ActionType = "set_payment_method"

	ActionSetOrganizer   ActionType = "set_organizer"
	ActionSetConcert     ActionType = "set_concert"
	ActionAddCategory    ActionType = "add_category"
	ActionRemoveCategory ActionType = "remove_category"
	ActionUpdateCategory ActionType = "update_category"
)

// Action is one user interaction. Only the fields relevant to Type are read.
type Action struct {
	Type          ActionType `json:"type"`
	Quantity      int        `json:"quantity,omitempty"`
	Index         int        `json:"index,omitempty"`
	Field         string     `json:"field,omitempty"`
	Value         string     `json:"value,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}
