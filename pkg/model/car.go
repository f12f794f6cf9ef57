package model

import (
	"strings"
	"time"
)

// Car is a rental listing. BookingCount is maintained by the store with
// atomic increments; clients never set it directly.
type Car struct {
	ID           string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Owner        Identity  `json:"owner" bson:"owner" validate:"required"`
	Brand        string    `json:"brand" bson:"brand" validate:"required,max=100"`
	Model        string    `json:"model" bson:"model" validate:"required,max=100"`
	Price        float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Location     string    `json:"location" bson:"location" validate:"required,max=200"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,url"`
	Availability string    `json:"availability,omitempty" bson:"availability,omitempty"`
	BookingCount int64     `json:"bookingCount" bson:"bookingCount"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

func (c *Car) Normalize() {
	c.Owner.Normalize()
	c.Brand = strings.TrimSpace(c.Brand)
	c.Model = strings.TrimSpace(c.Model)
	c.Location = strings.TrimSpace(c.Location)
	c.Description = strings.TrimSpace(c.Description)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	c.Availability = strings.TrimSpace(c.Availability)
}
