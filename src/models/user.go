package models

import "bfn/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `gorm:"default:'customer'" json:"role,omitempty"`

	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}
