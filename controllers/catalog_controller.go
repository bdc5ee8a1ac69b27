// controllers/catalog_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/models"

	"github.com/gin-gonic/gin"
)

// CatalogController covers the reference data: books, authors, genres,
// languages, plus the landing-page summary. Mutations are librarian-only,
// checked against the central access table.
type CatalogController struct{ *Srv }

func NewCatalogController(s *Srv) *CatalogController { return &CatalogController{Srv: s} }

func (cat *CatalogController) requireManage(c *gin.Context) bool {
	if err := lending.Authorize(app.ActorFrom(c), lending.OpManageCatalog); err != nil {
		renderError(c, err)
		return false
	}
	return true
}

// GET /api/catalog/summary
// Public landing-page counters. The visit counter lives in Redis so it
// survives restarts and doesn't touch Postgres on every hit.
func (cat *CatalogController) Summary(c *gin.Context) {
	sum, err := cat.Repo.Summarize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	visits, _ := cat.RDB.Incr(c.Request.Context(), "lib:visits:index").Result()
	c.JSON(http.StatusOK, app.H{"summary": sum, "visits": visits})
}

// Books

type bookInput struct {
	Title      string  `json:"title" binding:"required"`
	AuthorID   *string `json:"authorId"`
	Summary    string  `json:"summary"`
	ISBN       string  `json:"isbn"`
	LanguageID *string `json:"languageId"`
}

// GET /api/books?q=&page=&size=
func (cat *CatalogController) ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	books, total, err := cat.Repo.ListBooks(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": total, "books": books})
}

// GET /api/books/:id
func (cat *CatalogController) GetBook(c *gin.Context) {
	b, err := cat.Repo.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"book": b})
}

// POST /api/books  (librarian)
func (cat *CatalogController) CreateBook(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := &models.Book{
		ID:         newID(),
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		Summary:    in.Summary,
		ISBN:       in.ISBN,
		LanguageID: in.LanguageID,
	}
	if err := cat.Repo.CreateBook(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /api/books/:id  (librarian)
func (cat *CatalogController) UpdateBook(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := &models.Book{
		ID:         c.Param("id"),
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		Summary:    in.Summary,
		ISBN:       in.ISBN,
		LanguageID: in.LanguageID,
	}
	if err := cat.Repo.UpdateBook(c.Request.Context(), b); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id  (librarian)
func (cat *CatalogController) DeleteBook(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	if err := cat.Repo.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Authors

type authorInput struct {
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	DateOfBirth *time.Time `json:"dateOfBirth" time_format:"2006-01-02"`
	DateOfDeath *time.Time `json:"dateOfDeath" time_format:"2006-01-02"`
}

// GET /api/authors
func (cat *CatalogController) ListAuthors(c *gin.Context) {
	authors, err := cat.Repo.ListAuthors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"authors": authors})
}

// GET /api/authors/:id
func (cat *CatalogController) GetAuthor(c *gin.Context) {
	a, err := cat.Repo.FindAuthorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"author": a})
}

// POST /api/authors  (librarian)
func (cat *CatalogController) CreateAuthor(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in authorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Author{
		ID:          newID(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		DateOfDeath: in.DateOfDeath,
	}
	if err := cat.Repo.CreateAuthor(c.Request.Context(), a); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PUT /api/authors/:id  (librarian)
func (cat *CatalogController) UpdateAuthor(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in authorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Author{
		ID:          c.Param("id"),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		DateOfDeath: in.DateOfDeath,
	}
	if err := cat.Repo.UpdateAuthor(c.Request.Context(), a); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/authors/:id  (librarian)
func (cat *CatalogController) DeleteAuthor(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	if err := cat.Repo.DeleteAuthor(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Genres / Languages: name-only reference rows.

func (cat *CatalogController) ListGenres(c *gin.Context) {
	genres, err := cat.Repo.ListGenres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"genres": genres})
}

func (cat *CatalogController) CreateGenre(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	g := &models.Genre{ID: newID(), Name: in.Name}
	if err := cat.Repo.CreateGenre(c.Request.Context(), g); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (cat *CatalogController) DeleteGenre(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	if err := cat.Repo.DeleteGenre(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (cat *CatalogController) ListLanguages(c *gin.Context) {
	languages, err := cat.Repo.ListLanguages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"languages": languages})
}

func (cat *CatalogController) CreateLanguage(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	l := &models.Language{ID: newID(), Name: in.Name}
	if err := cat.Repo.CreateLanguage(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (cat *CatalogController) DeleteLanguage(c *gin.Context) {
	if !cat.requireManage(c) {
		return
	}
	if err := cat.Repo.DeleteLanguage(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
