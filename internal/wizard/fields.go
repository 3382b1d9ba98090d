package wizard

import (
	"fmt"

	"concert-pass/models"
)

const (
	FieldName  = "name"
	FieldPhone = "phone"

	FieldCategoryName      = "category_name"
	FieldBasePrice         = "base_price"
	FieldAvailableQuantity = "available_quantity"
)

// ResetAttendees returns n empty attendee records. Any previously entered data is
// dropped; callers invoke it whenever the ticket quantity changes.
func ResetAttendees(n int) []models.Attendee {
	if n < 0 {
		n = 0
	}
	return make([]models.Attendee, n)
}

// SetAttendeeField returns a copy of attendees with one field of one record replaced.
func SetAttendeeField(attendees []models.Attendee, index int, field, value string) ([]models.Attendee, error) {
	if index < 0 || index >= len(attendees) {
		return attendees, fmt.Errorf("%w: attendee index %d out of range", ErrInvalidAction, index)
	}

	out := append([]models.Attendee(nil), attendees...)
	switch field {
	case FieldName:
		out[index].Name = value
	case FieldPhone:
		out[index].Phone = value
	default:
		return attendees, fmt.Errorf("%w: unknown attendee field %q", ErrInvalidAction, field)
	}
	return out, nil
}

// AttendeesComplete reports whether every attendee has a name and a phone.
func AttendeesComplete(attendees []models.Attendee) bool {
	for _, a := range attendees {
		if !a.Complete() {
			return false
		}
	}
	return true
}

// CategoryDraft is a ticket category as typed into the listing form. Numbers stay
// as raw text until submission.
type CategoryDraft struct {
	CategoryName      string `json:"category_name"`
	BasePrice         string `json:"base_price"`
	AvailableQuantity string `json:"available_quantity"`
}

// AddCategory appends one blank category.
func AddCategory(categories []CategoryDraft) []CategoryDraft {
	out := make([]CategoryDraft, len(categories), len(categories)+1)
	copy(out, categories)
	return append(out, CategoryDraft{})
}

// RemoveCategory deletes the category at index unless it is the only one left.
// An out-of-range index leaves the list unchanged.
func RemoveCategory(categories []CategoryDraft, index int) []CategoryDraft {
	if len(categories) <= 1 || index < 0 || index >= len(categories) {
		return categories
	}
	out := make([]CategoryDraft, 0, len(categories)-1)
	out = append(out, categories[:index]...)
	return append(out, categories[index+1:]...)
}

// UpdateCategory returns a copy of categories with one field of one record replaced.
func UpdateCategory(categories []CategoryDraft, index int, field, value string) ([]CategoryDraft, error) {
	if index < 0 || index >= len(categories) {
		return categories, fmt.Errorf("%w: category index %d out of range", ErrInvalidAction, index)
	}

	out := append([]CategoryDraft(nil), categories...)
	switch field {
	case FieldCategoryName:
		out[index].CategoryName = value
	case FieldBasePrice:
		out[index].BasePrice = value
	case FieldAvailableQuantity:
		out[index].AvailableQuantity = value
	default:
		return categories, fmt.Errorf("%w: unknown category field %q", ErrInvalidAction, field)
	}
	return out, nil
}
