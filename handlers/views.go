package handlers

import (
	"fmt"

	"concert-pass/internal/wizard"
	"concert-pass/models"

	"github.com/shopspring/decimal"
)

// ConcertCard is one concert on the dashboard or in search results.
type ConcertCard struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	ImageURL string          `json:"image_url,omitempty"`
	MinPrice decimal.Decimal `json:"min_price"`
	URL      string          `json:"url"`
}

func concertCard(c models.Concert) ConcertCard {
	return ConcertCard{
		ID:       c.ID,
		Name:     c.Name,
		Location: c.Location,
		Date:     c.Date,
		Time:     c.Time,
		ImageURL: c.ImageURL,
		MinPrice: c.MinSellingPrice(),
		URL:      fmt.Sprintf("/concerts/%d", c.ID),
	}
}

type DashboardView struct {
	Query    string        `json:"query"`
	Hero     *ConcertCard  `json:"hero"`
	Concerts []ConcertCard `json:"concerts"`
}

func dashboardView(query string, concerts []models.Concert) DashboardView {
	view := DashboardView{Query: query, Concerts: make([]ConcertCard, 0, len(concerts))}
	for _, concert := range concerts {
		view.Concerts = append(view.Concerts, concertCard(concert))
	}
	if len(view.Concerts) > 0 {
		hero := view.Concerts[0]
		view.Hero = &hero
	}
	return view
}

type CategoryView struct {
	ID                int64           `json:"id"`
	CategoryName      string          `json:"category_name"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	AvailableQuantity int             `json:"available_quantity"`
	Purchasable       bool            `json:"purchasable"`
	BuyURL            string          `json:"buy_url,omitempty"`
}

type ConcertView struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Location       string         `json:"location"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	ImageURL       string         `json:"image_url,omitempty"`
	OrganizerName  string         `json:"organizer_name"`
	OrganizerPhone string         `json:"organizer_phone"`
	Categories     []CategoryView `json:"categories"`
	BackTo         string         `json:"back_to"`
}

func concertView(c models.Concert) ConcertView {
	view := ConcertView{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Location:       c.Location,
		Date:           c.Date,
		Time:           c.Time,
		ImageURL:       c.ImageURL,
		OrganizerName:  c.OrganizerName,
		OrganizerPhone: c.OrganizerPhone,
		Categories:     make([]CategoryView, 0, len(c.TicketCategories)),
		BackTo:         dashboardPath,
	}
	for _, category := range c.TicketCategories {
		cv := CategoryView{
			ID:                category.ID,
			CategoryName:      category.CategoryName,
			SellingPrice:      category.SellingPrice,
			AvailableQuantity: category.AvailableQuantity,
			Purchasable:       category.Purchasable(),
		}
		if cv.Purchasable {
			cv.BuyURL = fmt.Sprintf("/booking/%d?category=%d", c.ID, category.ID)
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

type BookingsView struct {
	Bookings  []models.Booking `json:"bookings"`
	Empty     bool             `json:"empty"`
	BrowseURL string           `json:"browse_url"`
}

// BookingView renders a booking draft with the affordances the current step allows.
type BookingView struct {
	InstanceID     string                 `json:"instance_id"`
	Concert        wizard.ConcertSummary  `json:"concert"`
	Category       CategoryView           `json:"category"`
	Step           wizard.Step            `json:"step"`
	TotalSteps     int                    `json:"total_steps"`
	Quantity       int                    `json:"quantity"`
	MaxQuantity    int                    `json:"max_quantity"`
	Attendees      []models.Attendee      `json:"attendees"`
	PaymentMethod  models.PaymentMethod   `json:"payment_method"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
	Total          decimal.Decimal        `json:"total"`
	NextEnabled    bool                   `json:"next_enabled"`
	BackEnabled    bool                   `json:"back_enabled"`
	ShowSubmit     bool                   `json:"show_submit"`
	SubmitEnabled  bool                   `json:"submit_enabled"`
	Submission     wizard.Submission      `json:"submission"`

	RedirectTo      string `json:"redirect_to,omitempty"`
	RedirectAfterMs int64  `json:"redirect_after_ms,omitempty"`
}

func bookingView(s wizard.BookingState) BookingView {
	return BookingView{
		InstanceID: s.InstanceID,
		Concert:    s.Concert,
		Category: CategoryView{
			ID:                s.Category.ID,
			CategoryName:      s.Category.CategoryName,
			SellingPrice:      s.Category.SellingPrice,
			AvailableQuantity: s.Category.AvailableQuantity,
			Purchasable:       s.Category.Purchasable(),
		},
		Step:           s.Steps.Current,
		TotalSteps:     s.Steps.Total,
		Quantity:       s.Quantity,
		MaxQuantity:    s.Category.AvailableQuantity,
		Attendees:      s.Attendees,
		PaymentMethod:  s.PaymentMethod,
		PaymentMethods: models.PaymentMethods,
		Total:          s.Total(),
		NextEnabled:    s.CanAdvance(),
		BackEnabled:    s.Steps.CanGoBack(),
		ShowSubmit:     s.Steps.IsLast(),
		SubmitEnabled:  s.CanSubmit(),
		Submission:     s.Submission,
	}
}

type CategoryDraftView struct {
	wizard.CategoryDraft
	SellingPricePreview decimal.Decimal `json:"selling_price_preview"`
}

// ListingView renders a listing draft with a live selling price preview per
// category.
type ListingView struct {
	InstanceID        string               `json:"instance_id"`
	Organizer         wizard.OrganizerInfo `json:"organizer"`
	Concert           wizard.ConcertInfo   `json:"concert"`
	Categories        []CategoryDraftView  `json:"categories"`
	CanRemoveCategory bool                 `json:"can_remove_category"`
	Step              wizard.Step          `json:"step"`
	TotalSteps        int                  `json:"total_steps"`
	NextEnabled       bool                 `json:"next_enabled"`
	BackEnabled       bool                 `json:"back_enabled"`
	ShowSubmit        bool                 `json:"show_submit"`
	SubmitEnabled     bool                 `json:"submit_enabled"`
	Submission        wizard.Submission    `json:"submission"`

	RedirectTo string `json:"redirect_to,omitempty"`
}

func listingView(s wizard.ListingState) ListingView {
	previews := s.Previews()
	categories := make([]CategoryDraftView, len(s.Categories))
	for i, category := range s.Categories {
		categories[i] = CategoryDraftView{CategoryDraft: category, SellingPricePreview: previews[i]}
	}

	return ListingView{
		InstanceID:        s.InstanceID,
		Organizer:         s.Organizer,
		Concert:           s.Concert,
		Categories:        categories,
		CanRemoveCategory: len(s.Categories) > 1,
		Step:              s.Steps.Current,
		TotalSteps:        s.Steps.Total,
		NextEnabled:       s.CanAdvance(),
		BackEnabled:       s.Steps.CanGoBack(),
		ShowSubmit:        s.Steps.IsLast(),
		SubmitEnabled:     s.CanSubmit(),
		Submission:        s.Submission,
	}
}
