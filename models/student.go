package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string  `gorm:"not null" json:"name"`
	Email   *string `gorm:"uniqueIndex" json:"email"` // Pointer to allow null
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	MembershipStart time.Time `gorm:"type:date;not null" json:"membership_start"`
	MembershipEnd   time.Time `gorm:"type:date;not null;index" json:"membership_end"`

	gorm.Model `json:"-"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Status reports "active" or "expired" based on the membership end date.
// A membership is active through the end of its last day.
func (s *Student) Status(now time.Time) string {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	end := time.Date(s.MembershipEnd.Year(), s.MembershipEnd.Month(), s.MembershipEnd.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(today) {
		return "expired"
	}
	return "active"
}
