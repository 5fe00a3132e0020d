package models

import "bfn/src/types"

// Trip is a destination product. Rows are created only through the
// trip creation saga and removed only through the cascade delete.
type Trip struct {
	ID              uint     `gorm:"primarykey" json:"id"`
	DestinationName string   `gorm:"uniqueIndex" json:"destination_name"`
	Description     string   `json:"description,omitempty"`
	Itinerary       string   `json:"itinerary,omitempty"`
	Destinations    string   `json:"destinations,omitempty"`
	PhysicalRating  uint     `json:"physical_rating,omitempty"`
	Days            uint     `json:"days,omitempty"`
	Nights          uint     `json:"nights,omitempty"`
	Inclusions      string   `json:"inclusions,omitempty"`
	Exclusions      string   `json:"exclusions,omitempty"`
	ItineraryKey    string   `json:"itinerary_key,omitempty"`
	Images          []string `gorm:"serializer:json" json:"images,omitempty"`
	Status          bool     `gorm:"default:true" json:"status"`

	Batches []Batch `json:"batches,omitempty"`

	types.Timestamps
}
