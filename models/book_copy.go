// models/book_copy.go
package models

import "time"

const CopyTable = "lib_book_copies"

// Status is the loan status of a single physical copy.
type Status string

const (
	StatusMaintenance     Status = "m"
	StatusOnLoan          Status = "o"
	StatusAvailable       Status = "a"
	StatusReserved        Status = "r"
	StatusBorrowRequested Status = "p" // user asked to borrow, librarian has not approved yet
)

func (s Status) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved, StatusBorrowRequested:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On Loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	case StatusBorrowRequested:
		return "Borrow Requested"
	}
	return string(s)
}

// Permissions gating the lending operations. Declared here because they
// belong to the copy lifecycle, whoever holds them acts on BookCopy rows.
const (
	PermCanMarkReturned = "catalog.can_mark_returned"
	PermCanRenew        = "catalog.can_renew"
	PermCanBorrow       = "catalog.can_borrow"
)

// BookCopy is one physical lendable unit of a Book.
type BookCopy struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	BookID     *string    `gorm:"type:uuid;index" json:"bookId,omitempty"` // orphan copies are allowed
	Imprint    string     `gorm:"size:200;not null" json:"imprint"`
	Status     Status     `gorm:"size:1;not null;default:'a'" json:"status"`
	DueBack    *time.Time `gorm:"type:date;index" json:"dueBack,omitempty"`
	BorrowerID *string    `gorm:"type:uuid;index" json:"borrowerId,omitempty"`

	// Version guards read-modify-write cycles: every persisted update must
	// name the version it read, and bumps it by one.
	Version int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BookCopy) TableName() string { return CopyTable }

// IsOverdue reports whether the copy's due date is strictly before today.
// Compared at day granularity: a copy due back today is not overdue, whatever
// time of day it is. A copy without a due date is never overdue.
func (c *BookCopy) IsOverdue(today time.Time) bool {
	if c.DueBack == nil {
		return false
	}
	y, m, d := c.DueBack.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, c.DueBack.Location())
	y, m, d = today.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location()))
}
