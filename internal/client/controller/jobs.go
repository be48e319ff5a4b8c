package controller

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/models"
)

// Jobs manages the user's tracked job leads. Mutations follow the
// optimistic protocol: snapshot the collection, apply the change
// locally, issue the call, then reconcile with the server entity or
// restore the snapshot on failure.
type Jobs struct {
	base

	mu   sync.Mutex
	jobs []models.Job
}

// NewJobs constructs a Jobs controller.
func NewJobs(deps Deps) *Jobs {
	return &Jobs{base: base{deps: deps}}
}

// JobPayload carries the user-editable job fields.
type JobPayload struct {
	Company     string           `json:"company"`
	Position    string           `json:"position"`
	Status      models.JobStatus `json:"status"`
	DateApplied string           `json:"date_applied"`
	Notes       string           `json:"notes"`
}

// Refresh fetches the job collection from the server, replacing the
// local copy.
func (c *Jobs) Refresh(ctx context.Context) error {
	token, err := c.token()
	if err != nil {
		return err
	}
	var jobs []models.Job
	if err := c.deps.Gateway.Do(ctx, http.MethodGet, "/api/jobs", nil, token, &jobs); err != nil {
		return c.recover(err)
	}

	c.mu.Lock()
	c.jobs = jobs
	c.mu.Unlock()
	return nil
}

// Jobs returns the local collection, filtered by status when filter is
// non-empty. Filtering is a pure local predicate; no re-fetch happens.
func (c *Jobs) Jobs(filter models.JobStatus) []models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()

	if filter == "" {
		return slices.Clone(c.jobs)
	}
	var out []models.Job
	for _, j := range c.jobs {
		if j.Status == filter {
			out = append(out, j)
		}
	}
	return out
}

// Create adds a new job lead. The lead appears locally at once; the
// server-assigned entity replaces the provisional copy on success.
func (c *Jobs) Create(ctx context.Context, payload JobPayload) (models.Job, error) {
	token, err := c.token()
	if err != nil {
		return models.Job{}, err
	}

	c.mu.Lock()
	snapshot := slices.Clone(c.jobs)
	provisional := models.Job{
		Company:  payload.Company,
		Position: payload.Position,
		Status:   payload.Status,
		Notes:    payload.Notes,
	}
	c.jobs = append(c.jobs, provisional)
	c.mu.Unlock()

	var created models.Job
	if err := c.deps.Gateway.Do(ctx, http.MethodPost, "/api/jobs", payload, token, &created); err != nil {
		c.restore(snapshot)
		return models.Job{}, c.recover(err)
	}

	// Reconcile: the server entity carries the assigned id and
	// canonical field values.
	c.mu.Lock()
	c.jobs = append(snapshot, created)
	c.mu.Unlock()
	c.deps.Log.Debug("job created", zap.String("id", created.ID))
	return created, nil
}

// Update edits an existing job lead optimistically.
func (c *Jobs) Update(ctx context.Context, id string, payload JobPayload) (models.Job, error) {
	token, err := c.token()
	if err != nil {
		return models.Job{}, err
	}

	c.mu.Lock()
	snapshot := slices.Clone(c.jobs)
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			c.jobs[i].Company = payload.Company
			c.jobs[i].Position = payload.Position
			c.jobs[i].Status = payload.Status
			c.jobs[i].Notes = payload.Notes
		}
	}
	c.mu.Unlock()

	var updated models.Job
	if err := c.deps.Gateway.Do(ctx, http.MethodPut, "/api/jobs/"+id, payload, token, &updated); err != nil {
		c.restore(snapshot)
		return models.Job{}, c.recover(err)
	}

	c.mu.Lock()
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			c.jobs[i] = updated
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// Delete removes a job lead. confirm is the blocking yes/no decision
// required before the optimistic removal begins; when it declines,
// Delete returns ErrCancelled without touching state or the network.
func (c *Jobs) Delete(ctx context.Context, id string, confirm func(models.Job) bool) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	idx := slices.IndexFunc(c.jobs, func(j models.Job) bool { return j.ID == id })
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	job := c.jobs[idx]
	c.mu.Unlock()

	if confirm != nil && !confirm(job) {
		return ErrCancelled
	}

	c.mu.Lock()
	snapshot := slices.Clone(c.jobs)
	c.jobs = slices.Delete(slices.Clone(c.jobs), idx, idx+1)
	c.mu.Unlock()

	if err := c.deps.Gateway.Do(ctx, http.MethodDelete, "/api/jobs/"+id, nil, token, nil); err != nil {
		c.restore(snapshot)
		return c.recover(err)
	}
	c.deps.Log.Debug("job deleted", zap.String("id", id))
	return nil
}

// Apply applies to an open job. The Open check is a client-side guard
// mirroring server-side validation: a non-open job is rejected with
// ErrNotOpen before any network call. On success the lead's status
// flips to Applied as a side effect.
func (c *Jobs) Apply(ctx context.Context, id string) (models.Job, error) {
	token, err := c.token()
	if err != nil {
		return models.Job{}, err
	}

	c.mu.Lock()
	idx := slices.IndexFunc(c.jobs, func(j models.Job) bool { return j.ID == id })
	if idx < 0 {
		c.mu.Unlock()
		return models.Job{}, ErrNotFound
	}
	if c.jobs[idx].Status != models.JobOpen {
		c.mu.Unlock()
		return models.Job{}, ErrNotOpen
	}
	snapshot := slices.Clone(c.jobs)
	c.jobs[idx].Status = models.JobApplied
	c.mu.Unlock()

	var applied models.Job
	err = c.deps.Gateway.Do(ctx, http.MethodPost, "/api/applications/apply/"+id,
		map[string]string{"cover_letter": ""}, token, &applied)
	if err != nil {
		c.restore(snapshot)
		return models.Job{}, c.recover(err)
	}

	c.mu.Lock()
	for i := range c.jobs {
		if c.jobs[i].ID == id && applied.ID != "" {
			c.jobs[i] = applied
		}
	}
	c.mu.Unlock()
	return applied, nil
}

// restore puts the pre-mutation snapshot back.
func (c *Jobs) restore(snapshot []models.Job) {
	c.mu.Lock()
	c.jobs = snapshot
	c.mu.Unlock()
}
