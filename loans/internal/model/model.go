package model

import (
	"bytes"
	"encoding/json"
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Decided reports whether s is a terminal status.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Label is the human readable status shown on the loan form.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Menunggu"
	case StatusApproved:
		return "Disetujui"
	case StatusRejected:
		return "Ditolak"
	}
	return string(s)
}

// Color is the hex color used to render the status.
func (s Status) Color() string {
	switch s {
	case StatusApproved:
		return "#2ecc71"
	case StatusRejected:
		return "#e74c3c"
	}
	return "#f39c12"
}

type ItemType string

const (
	ItemTent           ItemType = "Tenda"
	ItemPlasticChair   ItemType = "Kursi Plastik"
	ItemSoundSystem    ItemType = "Sound System"
	ItemWorkTools      ItemType = "Peralatan Kerja Bakti"
	ItemFoldingTable   ItemType = "Meja Lipat"
	ItemWaterDispenser ItemType = "Dispenser"
	ItemMat            ItemType = "Tikar"
	ItemPortableStage  ItemType = "Panggung Portable"
)

// Catalog lists loanable items in display order.
var Catalog = []ItemType{
	ItemTent,
	ItemPlasticChair,
	ItemSoundSystem,
	ItemWorkTools,
	ItemFoldingTable,
	ItemWaterDispenser,
	ItemMat,
	ItemPortableStage,
}

func (t ItemType) Valid() bool {
	for _, it := range Catalog {
		if it == t {
			return true
		}
	}
	return false
}

const (
	MinQuantity = 1
	MaxQuantity = 50
)

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time `json:",inline"`
}

// NewDate keeps the calendar day of t as seen in its own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

type Loan struct {
	ID            int      `json:"id"`
	BorrowerName  string   `json:"borrowerName"`
	ItemType      ItemType `json:"itemType"`
	Quantity      int      `json:"quantity"`
	LoanDate      Date     `json:"loanDate"`
	ReturnDate    Date     `json:"returnDate"`
	SubmittedDate Date     `json:"submittedDate"`
	Status        Status   `json:"status"`
}

// MarshalJSON adds the status label and color so clients can render rows as is.
func (l Loan) MarshalJSON() ([]byte, error) {
	type loan Loan
	return json.Marshal(struct {
		loan
		StatusLabel string `json:"statusLabel"`
		StatusColor string `json:"statusColor"`
	}{
		loan:        loan(l),
		StatusLabel: l.Status.Label(),
		StatusColor: l.Status.Color(),
	})
}

type SubmitRequest struct {
	BorrowerName string   `json:"borrowerName" validate:"required"`
	ItemType     ItemType `json:"itemType" validate:"required,itemtype"`
	Quantity     int      `json:"quantity" validate:"min=1,max=50"`
	LoanDate     Date     `json:"loanDate"`
	ReturnDate   Date     `json:"returnDate"`
}

type DecisionRequest struct {
	Outcome   Status `json:"outcome" validate:"required,oneof=APPROVED REJECTED"`
	Confirmed bool   `json:"confirmed"`
}

type ClearHistoryResponse struct {
	Cleared int `json:"cleared"`
}
