package queries

import "time"

// ExperienceSummaryView is the list item; it never carries slot detail.
type ExperienceSummaryView struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	City             string `json:"city"`
	BasePrice        int64  `json:"basePrice"`
	ImageURL         string `json:"imageUrl"`
	ShortDescription string `json:"shortDescription"`
}

type ExperienceView struct {
	ExperienceSummaryView
	Description string    `json:"description"`
	Days        []DayView `json:"days"`
}

type DayView struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

type SlotView struct {
	Time              string `json:"time"`
	CapacityRemaining int    `json:"capacityRemaining"`
	SoldOut           bool   `json:"soldOut"`
}

type BookingView struct {
	Reference    string    `json:"reference"`
	ExperienceID string    `json:"experienceId"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Quantity     int       `json:"quantity"`
	Subtotal     int64     `json:"subtotal"`
	Taxes        int64     `json:"taxes"`
	Discount     int64     `json:"discount"`
	Total        int64     `json:"total"`
	PromoCode    string    `json:"promoCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
