package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend expects plain JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

type ConcertStatus string

const (
	ConcertPending  ConcertStatus = "pending"
	ConcertApproved ConcertStatus = "approved"
	ConcertRejected ConcertStatus = "rejected"
)

// Valid reports whether s is one of the statuses the backend knows about.
func (s ConcertStatus) Valid() bool {
	switch s {
	case ConcertPending, ConcertApproved, ConcertRejected:
		return true
	}
	return false
}

type Concert struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Location         string           `json:"location"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	Description      string           `json:"description,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	OrganizerName    string           `json:"organizer_name"`
	OrganizerPhone   string           `json:"organizer_phone"`
	Status           ConcertStatus    `json:"status"`
	TicketCategories []TicketCategory `json:"ticket_categories"`
}

// Category returns the ticket category with the given id.
func (c *Concert) Category(id int64) (TicketCategory, bool) {
	for _, category := range c.TicketCategories {
		if category.ID == id {
			return category, true
		}
	}
	return TicketCategory{}, false
}

// MinSellingPrice is the cheapest selling price across the categories, zero when
// the concert has none.
func (c *Concert) MinSellingPrice() decimal.Decimal {
	if len(c.TicketCategories) == 0 {
		return decimal.Zero
	}
	min := c.TicketCategories[0].SellingPrice
	for _, category := range c.TicketCategories[1:] {
		if category.SellingPrice.LessThan(min) {
			min = category.SellingPrice
		}
	}
	return min
}

type TicketCategory struct {
	ID                int64           `json:"id,omitempty"`
	CategoryName      string          `json:"category_name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	AvailableQuantity int             `json:"available_quantity"`
}

// Purchasable reports whether at least one ticket is left.
func (t TicketCategory) Purchasable() bool {
	return t.AvailableQuantity > 0
}

// NewTicketCategory is the body sent when a concert is listed.
type NewTicketCategory struct {
	CategoryName      string          `json:"category_name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	AvailableQuantity int             `json:"available_quantity"`
}

type CreateConcertRequest struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Location         string              `json:"location"`
	Date             string              `json:"date"`
	Time             string              `json:"time"`
	ImageURL         string              `json:"image_url"`
	OrganizerName    string              `json:"organizer_name,omitempty"`
	OrganizerEmail   string              `json:"organizer_email,omitempty"`
	OrganizerPhone   string              `json:"organizer_phone,omitempty"`
	TicketCategories []NewTicketCategory `json:"ticket_categories"`
}
