// models/catalog.go
package models

import "time"

const (
	BookTable     = "lib_books"
	AuthorTable   = "lib_authors"
	GenreTable    = "lib_genres"
	LanguageTable = "lib_languages"
)

// Book identifies a title; the lendable units are BookCopy rows.
type Book struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string  `gorm:"size:200;not null;index" json:"title"`
	AuthorID   *string `gorm:"type:uuid;index" json:"authorId,omitempty"`
	Summary    string  `gorm:"size:1000" json:"summary"`
	ISBN       string  `gorm:"size:13" json:"isbn"`
	LanguageID *string `gorm:"type:uuid" json:"languageId,omitempty"`

	Genres []Genre `gorm:"many2many:lib_book_genres" json:"genres,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Author struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"firstName"`
	LastName    string     `gorm:"size:100;not null;index" json:"lastName"`
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	DateOfDeath *time.Time `gorm:"type:date" json:"dateOfDeath,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Genre struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"size:200;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Language struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string     { return BookTable }
func (Author) TableName() string   { return AuthorTable }
func (Genre) TableName() string    { return GenreTable }
func (Language) TableName() string { return LanguageTable }
