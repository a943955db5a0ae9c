package handlers

import (
	"net/http"
	"strconv"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/fitzone/fitzone-backend/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(page repository.Page, total int64) Pagination {
	return Pagination{Page: page.Page, Limit: page.Limit, Total: total, Pages: page.Pages(total)}
}

func pageFromQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return repository.NewPage(page, limit)
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  validation.Errors(err),
	})
}

func invalidField(c *gin.Context, field, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  []validation.FieldError{{Field: field, Message: msg}},
	})
}

// serverError logs err with the request logger and answers with the
// generic 500 body.
func serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	middleware.Logger(c).Error(msg, zap.Error(err))
	message(c, http.StatusInternalServerError, "Server error")
}

// idParam parses a positive numeric path parameter. It writes the 400 (or
// 404 for notFound != "") response itself and reports false on failure.
func idParam(c *gin.Context, name, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		if notFound != "" {
			message(c, http.StatusNotFound, notFound)
		} else {
			invalidField(c, name, "must be a positive integer")
		}
		return 0, false
	}
	return uint(id), true
}
