package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PageQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

type BatchListingQuery struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
	Page  int  `form:"page,default=1"`
}

// DayEntry is one day of a trip's day-by-day plan, keyed by day index
// in the daysData form field.
type DayEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateTripRequestBody struct {
	Name           string `form:"name" binding:"required"`
	Description    string `form:"description" binding:"required"`
	NumberOfDays   int    `form:"numberOfDays" binding:"required,min=1"`
	DaysData       string `form:"daysData" binding:"required"`
	Days           uint   `form:"days" binding:"required"`
	Nights         uint   `form:"nights" binding:"required"`
	Destinations   string `form:"destinations" binding:"required"`
	PhysicalRating uint   `form:"physicalRating" binding:"required"`
	Inclusions     string `form:"inclusions"`
	Exclusions     string `form:"exclusions"`
}

// AssetUpload is a file payload bound for the object store, already read
// out of the multipart request.
type AssetUpload struct {
	Filename    string
	ContentType string
	Body        []byte
}

type CreateBatchRequestBody struct {
	TripID         uint    `json:"trip_id" binding:"required"`
	BatchName      string  `json:"batch_name" binding:"required"`
	FromDate       int64   `json:"from_date" binding:"required"`
	ToDate         int64   `json:"to_date" binding:"required,gtfield=FromDate"`
	Days           uint    `json:"days" binding:"required"`
	Nights         uint    `json:"nights" binding:"required"`
	Price          float64 `json:"price" binding:"required"`
	Tax            float64 `json:"tax"`
	SingleRoom     uint    `json:"single_room"`
	DoubleRoom     uint    `json:"double_room"`
	TripleRoom     uint    `json:"triple_room"`
	MaxAdventurers uint    `json:"max_adventurers" binding:"required"`
}

// UpdateBatchRequestBody carries one optional slot per mutable batch
// attribute; only populated slots are written.
type UpdateBatchRequestBody struct {
	BatchName      *string  `json:"batch_name"`
	FromDate       *int64   `json:"from_date"`
	ToDate         *int64   `json:"to_date"`
	Days           *uint    `json:"days"`
	Nights         *uint    `json:"nights"`
	Price          *float64 `json:"price"`
	Tax            *float64 `json:"tax"`
	SingleRoom     *uint    `json:"single_room"`
	DoubleRoom     *uint    `json:"double_room"`
	TripleRoom     *uint    `json:"triple_room"`
	MaxAdventurers *uint    `json:"max_adventurers"`
	Status         *bool    `json:"status"`
}

type CreateBookingRequestBody struct {
	UserID         uint    `json:"userId" binding:"required"`
	BatchID        uint    `json:"batchId" binding:"required"`
	FullName       string  `json:"fullName" binding:"required"`
	Number         string  `json:"number" binding:"required"`
	GuardianNumber string  `json:"guardianNumber"`
	Email          string  `json:"email" binding:"required,email"`
	Payment        float64 `json:"payment" binding:"required"`
	Travellers     uint    `json:"travellers" binding:"required,min=1"`
	RoomType       string  `json:"roomType" binding:"required"`
}

type VerifyVoucherRequestBody struct {
	Code string `json:"code" binding:"required"`
}

type CreateCouponRequestBody struct {
	Code      string  `json:"code" binding:"required"`
	Deduction float64 `json:"deduction" binding:"required"`
	StartDate int64   `json:"startDate" binding:"required"`
	EndDate   int64   `json:"endDate" binding:"required,gtfield=StartDate"`
}

type UpdateCouponRequestBody struct {
	Deduction *float64 `json:"deduction"`
	StartDate *int64   `json:"startDate"`
	EndDate   *int64   `json:"endDate"`
	Status    *bool    `json:"status"`
}

type CreateEnquiryRequestBody struct {
	Type       string  `json:"type" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Location   string  `json:"location"`
	Travellers uint    `json:"travellers"`
	Days       uint    `json:"days"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone"`
	Message    string  `json:"message"`
	Budget     float64 `json:"budget"`
}
