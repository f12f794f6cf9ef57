package model

import "strings"

// Identity is the embedded owner/customer shape. Sessions are keyed by
// the email exactly as stored, so it is trimmed but never lowercased.
type Identity struct {
	Email string `json:"email" bson:"email" validate:"required,email"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
}

func (i *Identity) Normalize() {
	i.Email = strings.TrimSpace(i.Email)
	i.Name = strings.TrimSpace(i.Name)
}
