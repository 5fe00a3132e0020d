package models

import "bfn/src/types"

// Coupon is read-mostly reference data; StartDate/EndDate are epoch
// seconds bounding the active window.
type Coupon struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Code      string  `gorm:"uniqueIndex" json:"code"`
	Deduction float64 `json:"deduction"`
	StartDate int64   `json:"start_date"`
	EndDate   int64   `json:"end_date"`
	Status    bool    `gorm:"default:true" json:"status"`

	types.Timestamps
}
