package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentEWallet      PaymentMethod = "e_wallet"
)

// PaymentMethods lists the methods in the order the booking form offers them.
var PaymentMethods = []PaymentMethod{PaymentBankTransfer, PaymentCreditCard, PaymentEWallet}

func (m PaymentMethod) Valid() bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type Attendee struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Complete reports whether both required fields are filled in.
func (a Attendee) Complete() bool {
	return a.Name != "" && a.Phone != ""
}

type CreateBookingRequest struct {
	ConcertID        int64         `json:"concert_id"`
	TicketCategoryID int64         `json:"ticket_category_id"`
	Quantity         int           `json:"quantity"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	Attendees        []Attendee    `json:"attendees"`
}

type BookedAttendee struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	TicketNumber string `json:"ticket_number"`
}

type Booking struct {
	ID            int64            `json:"id"`
	ConcertID     int64            `json:"concert_id"`
	ConcertName   string           `json:"concert_name,omitempty"`
	CategoryName  string           `json:"category_name,omitempty"`
	Quantity      int              `json:"quantity"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Status        string           `json:"status"`
	Attendees     []BookedAttendee `json:"attendees"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
}
