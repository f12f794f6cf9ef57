package model

import (
	"strings"
	"time"
)

// Booking is a rental request against a Car. CarID is the hex id of the
// referenced listing; the store does not enforce it as a foreign key.
// BookingStatus is free text by contract: no transition rules apply.
type Booking struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	CarID         string    `json:"carID" bson:"carID" validate:"required,mongodb"`
	Customer      Identity  `json:"customer" bson:"customer" validate:"required"`
	CarModel      string    `json:"carModel,omitempty" bson:"carModel,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	StartDate     time.Time `json:"startDate" bson:"startDate"`
	EndDate       time.Time `json:"endDate" bson:"endDate"`
	BookingStatus string    `json:"bookingStatus,omitempty" bson:"bookingStatus,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

func (b *Booking) Normalize() {
	b.CarID = strings.TrimSpace(b.CarID)
	b.Customer.Normalize()
	b.CarModel = strings.TrimSpace(b.CarModel)
	b.ImageURL = strings.TrimSpace(b.ImageURL)
	b.BookingStatus = strings.TrimSpace(b.BookingStatus)
}

// StatusUpdate is the PATCH /booking-status payload. Any non-empty
// string is an accepted status value.
type StatusUpdate struct {
	BookingStatus string `json:"bookingStatus" validate:"required,max=50"`
}

// DateUpdate is the PATCH /booking-dates payload. Ordering of the two
// dates is not validated.
type DateUpdate struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}
