package wizard

import (
	"fmt"

	"concert-pass/models"

	"github.com/shopspring/decimal"
)

// ListingSteps: organizer, event, ticket categories.
const ListingSteps = 3

const (
	FieldFullName = "full_name"
	FieldEmail    = "email"

	FieldDescription = "description"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldImageURL    = "image_url"
)

type OrganizerInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type ConcertInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ImageURL    string `json:"image_url"`
}

// ListingState is the seller's draft of a new concert.
type ListingState struct {
	InstanceID string          `json:"instance_id"`
	Organizer  OrganizerInfo   `json:"organizer"`
	Concert    ConcertInfo     `json:"concert"`
	Categories []CategoryDraft `json:"categories"`
	Steps      Controller      `json:"steps"`
	Submission Submission      `json:"submission"`
}

// NewListing starts a listing with the organizer prefilled from the signed-in user
// and one blank ticket category.
func NewListing(instanceID string, user models.User) ListingState {
	return ListingState{
		InstanceID: instanceID,
		Organizer: OrganizerInfo{
			FullName: user.FullName,
			Email:    user.Email,
			Phone:    user.Phone,
		},
		Categories: []CategoryDraft{{}},
		Steps:      NewController(ListingSteps),
		Submission: Submission{Status: SubmissionIdle},
	}
}

func (s ListingState) StepValid(step Step) bool {
	switch step {
	case Step1:
		o := s.Organizer
		return o.FullName != "" && o.Email != "" && o.Phone != ""
	case Step2:
		c := s.Concert
		return c.Name != "" && c.Location != "" && c.Date != "" && c.Time != ""
	case Step3:
		if len(s.Categories) == 0 {
			return false
		}
		for _, category := range s.Categories {
			if category.CategoryName == "" {
				return false
			}
			if _, ok := ParseBasePrice(category.BasePrice); !ok {
				return false
			}
			if _, ok := ParseQuantity(category.AvailableQuantity); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (s ListingState) CanAdvance() bool {
	return !s.Steps.IsLast() && s.StepValid(s.Steps.Current)
}

func (s ListingState) CanSubmit() bool {
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

// Previews returns the selling price preview of every category, in order.
func (s ListingState) Previews() []decimal.Decimal {
	previews := make([]decimal.Decimal, len(s.Categories))
	for i, category := range s.Categories {
		previews[i] = PreviewSellingPrice(category.BasePrice)
	}
	return previews
}

// Request snapshots the draft into the body of the create-concert call.
func (s ListingState) Request() (models.CreateConcertRequest, error) {
	categories := make([]models.NewTicketCategory, 0, len(s.Categories))
	for i, category := range s.Categories {
		price, ok := ParseBasePrice(category.BasePrice)
		if !ok {
			return models.CreateConcertRequest{}, fmt.Errorf("%w: category %d base price %q", ErrInvalidAction, i, category.BasePrice)
		}
		quantity, ok := ParseQuantity(category.AvailableQuantity)
		if !ok {
			return models.CreateConcertRequest{}, fmt.Errorf("%w: category %d quantity %q", ErrInvalidAction, i, category.AvailableQuantity)
		}
		categories = append(categories, models.NewTicketCategory{
			CategoryName:      category.CategoryName,
			BasePrice:         price,
			AvailableQuantity: quantity,
		})
	}

	return models.CreateConcertRequest{
		Name:             s.Concert.Name,
		Description:      s.Concert.Description,
		Location:         s.Concert.Location,
		Date:             s.Concert.Date,
		Time:             s.Concert.Time,
		ImageURL:         s.Concert.ImageURL,
		OrganizerName:    s.Organizer.FullName,
		OrganizerEmail:   s.Organizer.Email,
		OrganizerPhone:   s.Organizer.Phone,
		TicketCategories: categories,
	}, nil
}

// ApplyListing returns the state that results from action a.
func ApplyListing(s ListingState, a Action) (ListingState, error) {
	switch a.Type {
	case ActionNext:
		s.Steps = s.Steps.Next(s.StepValid(s.Steps.Current))

	case ActionBack:
		s.Steps = s.Steps.Back()

	case ActionSetOrganizer:
		if !s.Steps.At(Step1) {
			return s, fmt.Errorf("%w: organizer is edited on step 1", ErrInvalidAction)
		}
		switch a.Field {
		case FieldFullName:
			s.Organizer.FullName = a.Value
		case FieldEmail:
			s.Organizer.Email = a.Value
		case FieldPhone:
			s.Organizer.Phone = a.Value
		default:
			return s, fmt.Errorf("%w: unknown organizer field %q", ErrInvalidAction, a.Field)
		}

	case ActionSetConcert:
		if !s.Steps.At(Step2) {
			return s, fmt.Errorf("%w: event info is edited on step 2", ErrInvalidAction)
		}
		switch a.Field {
		case FieldName:
			s.Concert.Name = a.Value
		case FieldDescription:
			s.Concert.Description = a.Value
		case FieldLocation:
			s.Concert.Location = a.Value
		case FieldDate:
			s.Concert.Date = a.Value
		case FieldTime:
			s.Concert.Time = a.Value
		case FieldImageURL:
			s.Concert.ImageURL = a.Value
		default:
			return s, fmt.Errorf("%w: unknown concert field %q", ErrInvalidAction, a.Field)
		}

	case ActionAddCategory:
		if !s.Steps.At(Step3) {
			return s, fmt.Errorf("%w: categories are edited on step 3", ErrInvalidAction)
		}
		s.Categories = AddCategory(s.Categories)

	case ActionRemoveCategory:
		if !s.Steps.At(Step3) {
			return s, fmt.Errorf("%w: categories are edited on step 3", ErrInvalidAction)
		}
		s.Categories = RemoveCategory(s.Categories, a.Index)

	case ActionUpdateCategory:
		if !s.Steps.At(Step3) {
			return s, fmt.Errorf("%w: categories are edited on step 3", ErrInvalidAction)
		}
		categories, err := UpdateCategory(s.Categories, a.Index, a.Field, a.Value)
		if err != nil {
			return s, err
		}
		s.Categories = categories

	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidAction, a.Type)
	}
	return s, nil
}
