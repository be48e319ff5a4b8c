package controller

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/models"
)

// Admin manages the reviewer's view of applications. Filtering here is
// applied server-side via query parameters, so a filter change always
// re-fetches from the server rather than narrowing the local copy.
type Admin struct {
	base

	mu      sync.Mutex
	filters Filters
	apps    []models.Application
	stats   models.AdminStats
}

// NewAdmin constructs an Admin controller.
func NewAdmin(deps Deps) *Admin {
	return &Admin{base: base{deps: deps}}
}

// Filters are the server-side query parameters for the application
// list. Zero values mean "no constraint".
type Filters struct {
	Status      models.ApplicationStatus
	AgeMin      int
	AgeMax      int
	DegreeClass string
}

// query renders the non-zero filters as URL query parameters.
func (f Filters) query() string {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.AgeMin > 0 {
		v.Set("ageMin", strconv.Itoa(f.AgeMin))
	}
	if f.AgeMax > 0 {
		v.Set("ageMax", strconv.Itoa(f.AgeMax))
	}
	if f.DegreeClass != "" {
		v.Set("degreeClass", f.DegreeClass)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// SetFilters stores new filter parameters and re-fetches the
// application list from the server.
func (c *Admin) SetFilters(ctx context.Context, f Filters) error {
	c.mu.Lock()
	c.filters = f
	c.mu.Unlock()
	return c.RefreshApplications(ctx)
}

// RefreshApplications fetches the application list under the current
// filters, replacing the local copy.
func (c *Admin) RefreshApplications(ctx context.Context) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	q := c.filters.query()
	c.mu.Unlock()

	var apps []models.Application
	if err := c.deps.Gateway.Do(ctx, http.MethodGet, "/api/admin/applications"+q, nil, token, &apps); err != nil {
		return c.recover(err)
	}

	c.mu.Lock()
	c.apps = apps
	c.mu.Unlock()
	return nil
}

// RefreshStats fetches the application summary.
func (c *Admin) RefreshStats(ctx context.Context) error {
	token, err := c.token()
	if err != nil {
		return err
	}
	var stats models.AdminStats
	if err := c.deps.Gateway.Do(ctx, http.MethodGet, "/api/admin/stats", nil, token, &stats); err != nil {
		return c.recover(err)
	}

	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
	return nil
}

// Applications returns the local copy of the filtered list.
func (c *Admin) Applications() []models.Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.apps)
}

// Stats returns the last fetched summary.
func (c *Admin) Stats() models.AdminStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// UpdateStatus moves one application to a new review status. The local
// row flips optimistically; on success both the list and the stats are
// re-fetched because the counts changed server-side.
func (c *Admin) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	token, err := c.token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	snapshot := slices.Clone(c.apps)
	for i := range c.apps {
		if c.apps[i].ID == id {
			c.apps[i].Status = status
		}
	}
	c.mu.Unlock()

	err = c.deps.Gateway.Do(ctx, http.MethodPut, "/api/admin/applications/"+id+"/status",
		map[string]models.ApplicationStatus{"status": status}, token, nil)
	if err != nil {
		c.mu.Lock()
		c.apps = snapshot
		c.mu.Unlock()
		return c.recover(err)
	}

	if err := c.RefreshApplications(ctx); err != nil {
		return err
	}
	return c.RefreshStats(ctx)
}

// batchRequest is the wire form of a batch status transition.
type batchRequest struct {
	IDs    []string                 `json:"ids"`
	Status models.ApplicationStatus `json:"status"`
}

// BatchUpdateStatus transitions every application whose status differs
// from target in a single round trip, then re-fetches the list and the
// stats; the batch response itself is never merged locally. When no
// application differs, no network call is made and the count is zero.
// The call is all-or-nothing from the client's perspective: partial
// success is not distinguishable and must not be assumed.
func (c *Admin) BatchUpdateStatus(ctx context.Context, target models.ApplicationStatus) (int, error) {
	if !target.Valid() {
		return 0, ErrInvalidStatus
	}
	token, err := c.token()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	var ids []string
	for _, app := range c.apps {
		if app.Status != target {
			ids = append(ids, app.ID)
		}
	}
	c.mu.Unlock()

	if len(ids) == 0 {
		return 0, nil
	}

	err = c.deps.Gateway.Do(ctx, http.MethodPost, "/api/admin/applications/batch-status",
		batchRequest{IDs: ids, Status: target}, token, nil)
	if err != nil {
		return 0, c.recover(err)
	}
	c.deps.Log.Info("batch status update",
		zap.Int("count", len(ids)), zap.String("status", string(target)))

	if err := c.RefreshApplications(ctx); err != nil {
		return len(ids), err
	}
	return len(ids), c.RefreshStats(ctx)
}
