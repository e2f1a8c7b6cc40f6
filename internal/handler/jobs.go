package handler

import (
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
)

// JobsHandler serves the job and job card routes beyond plain CRUD.
type JobsHandler struct {
	jobs   *resource.Jobs
	cards  *resource.JobCards
	tokens TokenSource
}

func NewJobsHandler(jobs *resource.Jobs, cards *resource.JobCards, tokens TokenSource) *JobsHandler {
	return &JobsHandler{jobs: jobs, cards: cards, tokens: tokens}
}

// GetBySlug godoc
// @Summary Job by slug
// @Tags jobs
// @Produce json
// @Param slug path string true "Job slug"
// @Success 200 {object} model.Job
// @Failure 502 {object} apierror.APIError
// @Router /v1/jobs/slug/{slug} [get]
func (h *JobsHandler) GetBySlug(c *gin.Context) {
	respond(c, http.StatusOK, h.jobs.GetBySlug(c.Request.Context(), c.Param("slug"), h.tokens.AccessToken()))
}

func (h *JobsHandler) UpdateStatus(c *gin.Context) {
	var req dto.JobStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.jobs.UpdateStatus(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

// Cards lists the job cards of one job as a table page.
func (h *JobsHandler) Cards(c *gin.Context) {
	rows, err := h.cards.ListByJob(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writePage(c, rows)
}

func (h *JobsHandler) UpdateCardStatus(c *gin.Context) {
	var req dto.JobCardStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.cards.UpdateStatus(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

func (h *JobsHandler) AddAttachment(c *gin.Context) {
	var req dto.AttachmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusCreated, h.cards.AddAttachment(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

func (h *JobsHandler) RemoveAttachment(c *gin.Context) {
	respond(c, http.StatusOK, h.cards.RemoveAttachment(c.Request.Context(), c.Param("id"), c.Param("attachmentId"), h.tokens.AccessToken()))
}

func (h *JobsHandler) AddProduct(c *gin.Context) {
	var req dto.JobCardProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusCreated, h.cards.AddProduct(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

func (h *JobsHandler) RemoveProduct(c *gin.Context) {
	respond(c, http.StatusOK, h.cards.RemoveProduct(c.Request.Context(), c.Param("id"), c.Param("productId"), h.tokens.AccessToken()))
}
