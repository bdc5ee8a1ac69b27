// db/repo_catalog.go
package db

import (
	"context"
	"errors"
	"strings"

	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/models"

	"gorm.io/gorm"
)

// Catalog reference data: books, authors, genres, languages. Plain CRUD,
// no lending semantics.

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lending.ErrNotFound
	}
	return err
}

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).Preload("Genres").First(&b, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &b, nil
}

func (r *Repo) UpdateBook(ctx context.Context, b *models.Book) error {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":       b.Title,
			"author_id":   b.AuthorID,
			"summary":     b.Summary,
			"isbn":        b.ISBN,
			"language_id": b.LanguageID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

// ListBooks supports the trivial title search: a pass-through ILIKE filter,
// nothing fancier.
func (r *Repo) ListBooks(ctx context.Context, q string, page, size int) ([]models.Book, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Book{})
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("title ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.Book
	if err := tx.
		Order("title ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// Authors

func (r *Repo) CreateAuthor(ctx context.Context, a *models.Author) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindAuthorByID(ctx context.Context, id string) (*models.Author, error) {
	var a models.Author
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &a, nil
}

func (r *Repo) UpdateAuthor(ctx context.Context, a *models.Author) error {
	res := r.DB.WithContext(ctx).Model(&models.Author{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"first_name":    a.FirstName,
			"last_name":     a.LastName,
			"date_of_birth": a.DateOfBirth,
			"date_of_death": a.DateOfDeath,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteAuthor(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Author{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *Repo) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	err := r.DB.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Find(&authors).Error
	return authors, err
}

// Genres / Languages

func (r *Repo) CreateGenre(ctx context.Context, g *models.Genre) error {
	return r.DB.WithContext(ctx).Create(g).Error
}

func (r *Repo) DeleteGenre(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Genre{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *Repo) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repo) CreateLanguage(ctx context.Context, l *models.Language) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *Repo) DeleteLanguage(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Language{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *Repo) ListLanguages(ctx context.Context) ([]models.Language, error) {
	var languages []models.Language
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&languages).Error
	return languages, err
}

// CatalogSummary feeds the index page counters.
type CatalogSummary struct {
	Books           int64 `json:"books"`
	Copies          int64 `json:"copies"`
	CopiesAvailable int64 `json:"copiesAvailable"`
	Authors         int64 `json:"authors"`
	Genres          int64 `json:"genres"`
	Languages       int64 `json:"languages"`
}

func (r *Repo) Summarize(ctx context.Context) (*CatalogSummary, error) {
	var s CatalogSummary
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Book{}, &s.Books},
		{&models.BookCopy{}, &s.Copies},
		{&models.Author{}, &s.Authors},
		{&models.Genre{}, &s.Genres},
		{&models.Language{}, &s.Languages},
	}
	for _, c := range counts {
		if err := r.DB.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	if err := r.DB.WithContext(ctx).Model(&models.BookCopy{}).
		Where("status = ?", models.StatusAvailable).
		Count(&s.CopiesAvailable).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
