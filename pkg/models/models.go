package models

import (
	"errors"
	"time"
)

// Media kind tags stored on loan rows.
const (
	KindBook = "BOOK"
	KindCD   = "CD"
)

var ErrInvalidQuantity = errors.New("quantity must be >= 1")

type Book struct {
	ID            uint   `gorm:"primaryKey"`
	ISBN          string `gorm:"size:40;uniqueIndex;not null"`
	Title         string `gorm:"not null"`
	Author        string
	Quantity      int `gorm:"not null;default:1;check:quantity >= 1"`
	BorrowedCount int `gorm:"not null;default:0;check:borrowed_count >= 0 AND borrowed_count <= quantity"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasAvailableCopy reports whether at least one copy is not lent out.
func (b *Book) HasAvailableCopy() bool {
	return b.BorrowedCount < b.Quantity
}

type CD struct {
	ID        uint   `gorm:"primaryKey"`
	DiscID    string `gorm:"size:40;uniqueIndex;not null"`
	Title     string `gorm:"not null"`
	Artist    string
	Borrowed  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:80;uniqueIndex;not null"`
	Name        string `gorm:"size:80;not null"`
	Email       string `gorm:"not null"`
	FineBalance int    `gorm:"not null;default:0;check:fine_balance >= 0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Loan is a ledger row. It is never updated after creation; overdue status
// and fines are always derived from DueDate, never stored back.
type Loan struct {
	ID         uint   `gorm:"primaryKey"`
	LoanUID    string `gorm:"type:uuid;uniqueIndex;not null"`
	Kind       string `gorm:"size:10;not null;index"`
	UserID     string `gorm:"size:80;not null;index"`
	MediaID    string `gorm:"size:40;not null"`
	BorrowDate time.Time
	DueDate    time.Time
	CreatedAt  time.Time
}
