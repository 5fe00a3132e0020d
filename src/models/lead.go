package models

import "bfn/src/types"

// Lead is an enquiry submitted from the public site.
type Lead struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	Type       string  `json:"type,omitempty"`
	Name       string  `json:"name,omitempty"`
	Location   string  `json:"location,omitempty"`
	Travellers uint    `json:"travellers,omitempty"`
	Days       uint    `json:"days,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Message    string  `json:"message,omitempty"`
	Budget     float64 `json:"budget,omitempty"`

	types.Timestamps
}
