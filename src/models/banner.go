package models

import "bfn/src/types"

type Banner struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	BannerName  string `json:"banner_name"`
	Description string `json:"description,omitempty"`
	ImageKey    string `json:"image_key,omitempty"`
	Status      bool   `gorm:"default:true" json:"status"`

	types.Timestamps
}
