package resource

import (
	"context"
	"encoding/json"
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/model"
)

type Jobs struct {
	*Crud[model.Job, dto.JobRequest, dto.JobRequest]
}

func NewJobs(r Requester) *Jobs {
	return &Jobs{NewCrud[model.Job, dto.JobRequest, dto.JobRequest](r, "/jobs")}
}

// GetBySlug fetches a job by its human-readable slug.
func (j *Jobs) GetBySlug(ctx context.Context, slug, token string) Result[model.Job] {
	if slug == "" {
		return Fail[model.Job]("slug is required")
	}
	return call[model.Job](ctx, j.r, http.MethodGet, join("/jobs/slug", slug), nil, token)
}

func (j *Jobs) UpdateStatus(ctx context.Context, id string, payload dto.JobStatusRequest, token string) Result[model.Job] {
	return j.patch(ctx, id, "status", payload, token)
}

// JobCards are the units of contractor work inside a job. Attachments and
// product lines are sub-resources of a card.
type JobCards struct {
	*Crud[model.JobCard, dto.JobCardRequest, dto.JobCardRequest]
}

func NewJobCards(r Requester) *JobCards {
	return &JobCards{NewCrud[model.JobCard, dto.JobCardRequest, dto.JobCardRequest](r, "/job-cards")}
}

func (c *JobCards) ListByJob(ctx context.Context, jobID, token string) Result[[]model.JobCard] {
	if jobID == "" {
		return FromError[[]model.JobCard](errMissingID)
	}
	return call[[]model.JobCard](ctx, c.r, http.MethodGet, join("/jobs", jobID, "cards"), nil, token)
}

func (c *JobCards) UpdateStatus(ctx context.Context, id string, payload dto.JobCardStatusRequest, token string) Result[model.JobCard] {
	return c.patch(ctx, id, "status", payload, token)
}

func (c *JobCards) AddAttachment(ctx context.Context, id string, payload dto.AttachmentRequest, token string) Result[model.JobCard] {
	if id == "" {
		return FromError[model.JobCard](errMissingID)
	}
	return send[model.JobCard](ctx, c.r, http.MethodPost, join(c.path, id, "attachments"), payload, token)
}

func (c *JobCards) RemoveAttachment(ctx context.Context, id, attachmentID, token string) Result[json.RawMessage] {
	if id == "" || attachmentID == "" {
		return FromError[json.RawMessage](errMissingID)
	}
	return call[json.RawMessage](ctx, c.r, http.MethodDelete, join(c.path, id, "attachments", attachmentID), nil, token)
}

func (c *JobCards) AddProduct(ctx context.Context, id string, payload dto.JobCardProductRequest, token string) Result[model.JobCard] {
	if id == "" {
		return FromError[model.JobCard](errMissingID)
	}
	return send[model.JobCard](ctx, c.r, http.MethodPost, join(c.path, id, "products"), payload, token)
}

func (c *JobCards) RemoveProduct(ctx context.Context, id, productID, token string) Result[json.RawMessage] {
	if id == "" || productID == "" {
		return FromError[json.RawMessage](errMissingID)
	}
	return call[json.RawMessage](ctx, c.r, http.MethodDelete, join(c.path, id, "products", productID), nil, token)
}
