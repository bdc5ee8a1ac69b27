// controllers/copy_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/lending"
	"Gin_postgres_redis_library_lending/models"

	"github.com/gin-gonic/gin"
)

// CopyController exposes the lending lifecycle over HTTP. All the real
// rules live in the workflow; these handlers just bind JSON and map errors.
type CopyController struct{ *Srv }

func NewCopyController(s *Srv) *CopyController { return &CopyController{Srv: s} }

// POST /api/copies  (librarian)
func (cc *CopyController) CreateCopy(c *gin.Context) {
	var in struct {
		BookID  *string       `json:"bookId"`
		Imprint string        `json:"imprint" binding:"required"`
		Status  models.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Status == "" {
		in.Status = models.StatusAvailable
	}

	bc, err := cc.Workflow.CreateCopy(c.Request.Context(), app.ActorFrom(c), lending.CreateCopyInput{BookID: in.BookID, Imprint: in.Imprint, Status: in.Status})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bc)
}

// PUT /api/copies/:id  (librarian)
func (cc *CopyController) UpdateCopy(c *gin.Context) {
	var in struct {
		Imprint string        `json:"imprint" binding:"required"`
		Status  models.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bc, err := cc.Workflow.UpdateCopy(c.Request.Context(), app.ActorFrom(c), c.Param("id"), lending.UpdateCopyInput{Imprint: in.Imprint, Status: in.Status})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc)
}

// DELETE /api/copies/:id  (librarian)
func (cc *CopyController) DeleteCopy(c *gin.Context) {
	if err := cc.Workflow.DeleteCopy(c.Request.Context(), app.ActorFrom(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/copies/:id/borrow  (member)
func (cc *CopyController) BorrowRequest(c *gin.Context) {
	var in struct {
		DueBack time.Time `json:"dueBack" binding:"required" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bc, err := cc.Workflow.BorrowRequest(c.Request.Context(), app.ActorFrom(c), c.Param("id"), lending.BorrowRequestInput{DueBack: in.DueBack})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc)
}

// POST /api/copies/:id/approve  (librarian with can_renew)
func (cc *CopyController) ApproveBorrow(c *gin.Context) {
	var in struct {
		Status models.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bc, err := cc.Workflow.ApproveBorrow(c.Request.Context(), app.ActorFrom(c), c.Param("id"), lending.ApproveBorrowInput{Status: in.Status})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc)
}

// POST /api/copies/:id/renew  (librarian with can_renew)
func (cc *CopyController) RenewLoan(c *gin.Context) {
	var in struct {
		DueBack time.Time `json:"dueBack" binding:"required" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bc, err := cc.Workflow.RenewLoan(c.Request.Context(), app.ActorFrom(c), c.Param("id"), lending.RenewLoanInput{DueBack: in.DueBack})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc)
}

// POST /api/copies/:id/return  (librarian)
func (cc *CopyController) MarkReturned(c *gin.Context) {
	var in struct {
		Status     models.Status `json:"status" binding:"required"`
		DueBack    *time.Time    `json:"dueBack" time_format:"2006-01-02"`
		BorrowerID *string       `json:"borrowerId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bc, err := cc.Workflow.MarkReturned(c.Request.Context(), app.ActorFrom(c), c.Param("id"), lending.MarkReturnedInput{Status: in.Status, DueBack: in.DueBack, BorrowerID: in.BorrowerID})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc)
}

// GET /api/copies/:id
func (cc *CopyController) GetCopy(c *gin.Context) {
	bc, err := cc.Repo.GetCopy(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"copy":    bc,
		"overdue": bc.IsOverdue(time.Now()),
	})
}

// GET /api/copies?status=&overdue=&page=&size=  (librarian)
func (cc *CopyController) ListCopies(c *gin.Context) {
	q := db.CopiesQuery{
		Status:  models.Status(c.Query("status")),
		Overdue: c.Query("overdue") == "true",
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := cc.Repo.ListCopies(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/copies/available lists the shelf users borrow from.
func (cc *CopyController) ListAvailable(c *gin.Context) {
	copies, err := cc.Repo.ListAvailableCopies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"copies": copies})
}

// GET /api/copies/mine lists the caller's on-loan copies, oldest due first.
func (cc *CopyController) ListMine(c *gin.Context) {
	v, _ := c.Get("userID")
	uid, _ := v.(string)

	copies, err := cc.Repo.ListCopiesOnLoanByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"copies": copies})
}

// GET /api/copies/on-loan  (librarian)
func (cc *CopyController) ListOnLoan(c *gin.Context) {
	copies, err := cc.Repo.ListCopiesOnLoan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"copies": copies})
}

// GET /api/copies/requests lists requests awaiting librarian approval.
func (cc *CopyController) ListBorrowRequests(c *gin.Context) {
	copies, err := cc.Repo.ListBorrowRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"copies": copies})
}
