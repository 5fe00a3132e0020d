package models

import (
	"bfn/src/lib"
	"bfn/src/types"
	"log"
)

type Booking struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	UserID         uint    `json:"user_id,omitempty"`
	BatchID        uint    `json:"batch_id,omitempty"`
	Name           string  `json:"name"`
	PhoneNumber    string  `json:"phone_number,omitempty"`
	GuardianNumber string  `json:"guardian_number,omitempty"`
	Email          string  `json:"email,omitempty"`
	Payment        float64 `json:"payment"`
	Travellers     uint    `json:"travellers"`
	RoomType       string  `json:"room_type,omitempty"`
	InvoiceID      string  `json:"invoice_id,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Batch *Batch `gorm:"foreignKey:batch_id" json:"batch,omitempty"`

	types.Timestamps
}

func BookingCreatedProducer(id uint, payload map[string]any) error {
	err := lib.KafkaProduceMessage("bookings_created_producer", "bookings-created", payload)
	if err != nil {
		log.Printf("Error on producing message: %s\n", err.Error())
		return err
	}
	return nil
}
