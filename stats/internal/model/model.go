package model

import "time"

type ItemStats struct {
	ItemType  string `json:"itemType" db:"item_type"`
	Submitted int    `json:"submitted" db:"submitted"`
	Approved  int    `json:"approved" db:"approved"`
	Rejected  int    `json:"rejected" db:"rejected"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

type Summary struct {
	Items     []ItemStats `json:"items"`
	Cleared   int         `json:"cleared"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
