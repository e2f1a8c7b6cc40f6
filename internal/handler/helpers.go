package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"repairs/internal/apierror"
	"repairs/internal/dto"
	"repairs/internal/resource"
	"repairs/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func init() {
	// Forms must match the DTOs exactly; a stray field is a client bug.
	binding.EnableDecoderDisallowUnknownFields = true
}

// TokenSource yields the access token every wrapper call is made with.
// *session.Store implements it.
type TokenSource interface {
	AccessToken() string
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := dto.Validate(req); err != nil {
		var fields dto.ValidationErrors
		if errors.As(err, &fields) {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
			return false
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return false
	}
	return true
}

// respond writes the data of a successful Result with status, or the
// server's failure message as 502.
func respond[T any](c *gin.Context, status int, res resource.Result[T]) {
	data, err := res.Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	c.JSON(status, data)
}

func upstreamFailure(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
}

// writePage filters, sorts and paginates rows per the table query string.
func writePage[T any](c *gin.Context, rows []T) {
	page, err := table.Apply(rows, table.ParseQuery(c.Request.URL.Query()))
	if err != nil {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("table: apply failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Could not build the table"))
		return
	}
	c.JSON(http.StatusOK, page)
}

// writeExport sends every row that matches the query's search and sort as an
// xlsx attachment. Pagination is ignored.
func writeExport[T any](c *gin.Context, rows []T, sheet string) {
	q := table.ParseQuery(c.Request.URL.Query())
	q.Page = 1
	q.PageSize = len(rows) + 1
	page, err := table.Apply(rows, q)
	if err == nil {
		var data []byte
		if data, err = table.ExportXLSX(page.Items, sheet, nil); err == nil {
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, sheet))
			c.Data(http.StatusOK, xlsxContentType, data)
			return
		}
	}
	log.Error().Err(err).Str("sheet", sheet).Msg("table: export failed")
	c.JSON(http.StatusInternalServerError, apierror.New("Could not export the table"))
}

// limitParam reads ?limit, falling back to def for anything that is not a
// positive integer.
func limitParam(c *gin.Context, def int) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		return n
	}
	return def
}
