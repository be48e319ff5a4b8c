package controller

import (
	"context"
	"net/http"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/models"
)

// Applications submits full applications with documents attached.
// The lighter cover-letter-only path lives on Jobs.Apply.
type Applications struct {
	base
}

// NewApplications constructs an Applications controller.
func NewApplications(deps Deps) *Applications {
	return &Applications{base{deps: deps}}
}

// ApplyToJob submits a multipart application: the cover letter as a
// form field and, when cvPath is non-empty, the CV as a file part.
func (c *Applications) ApplyToJob(ctx context.Context, jobID, coverLetter, cvPath string) (models.Application, error) {
	token, err := c.token()
	if err != nil {
		return models.Application{}, err
	}

	fields := map[string]string{"cover_letter": coverLetter}
	var files []gateway.FormFile
	if cvPath != "" {
		files = append(files, gateway.FormFile{Field: "file", Path: cvPath})
	}

	var app models.Application
	err = c.deps.Gateway.DoForm(ctx, http.MethodPost, "/api/jobs/apply/"+jobID, fields, files, token, &app)
	if err != nil {
		return models.Application{}, c.recover(err)
	}
	return app, nil
}
