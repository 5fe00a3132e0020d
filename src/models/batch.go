package models

import "bfn/src/types"

// Batch is one scheduled, priced departure of a Trip. FromDate/ToDate are
// epoch seconds; Booked is the consumed-capacity counter and is only ever
// moved by the conditional update in utils.CreateBooking.
type Batch struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	TripID         uint    `json:"trip_id,omitempty"`
	BatchName      string  `gorm:"uniqueIndex" json:"batch_name"`
	FromDate       int64   `json:"from_date,omitempty"`
	ToDate         int64   `json:"to_date,omitempty"`
	Days           uint    `json:"days,omitempty"`
	Nights         uint    `json:"nights,omitempty"`
	Price          float64 `json:"price"`
	Tax            float64 `json:"tax"`
	SingleRoom     uint    `json:"single_room"`
	DoubleRoom     uint    `json:"double_room"`
	TripleRoom     uint    `json:"triple_room"`
	MaxAdventurers uint    `json:"max_adventurers"`
	Booked         uint    `json:"booked"`
	Status         bool    `gorm:"default:true" json:"status"`

	Trip     *Trip     `gorm:"foreignKey:trip_id" json:"trip,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}
