package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/models"
)

// Profile manages the user's profile. Updates use full-replace
// semantics: every submit resends all scalar fields as a multipart
// form, with the picture and CV attached when chosen.
type Profile struct {
	base
}

// NewProfile constructs a Profile controller.
func NewProfile(deps Deps) *Profile {
	return &Profile{base{deps: deps}}
}

// ProfileUpdate carries the full set of profile fields for a submit.
// PicturePath and CVPath are local file paths, empty when unchanged.
type ProfileUpdate struct {
	Name           string
	Phone          string
	Bio            string
	Location       string
	Age            int
	EducationLevel string
	EducationGrade string
	Experience     string
	Skills         []string
	PicturePath    string
	CVPath         string
}

// Fetch retrieves the current profile.
func (c *Profile) Fetch(ctx context.Context) (models.Profile, error) {
	token, err := c.token()
	if err != nil {
		return models.Profile{}, err
	}
	var p models.Profile
	if err := c.deps.Gateway.Do(ctx, http.MethodGet, "/auth/profile", nil, token, &p); err != nil {
		return models.Profile{}, c.recover(err)
	}
	return p, nil
}

// Update replaces the profile. Skills travel as a single comma-joined
// string; the server splits them back.
func (c *Profile) Update(ctx context.Context, u ProfileUpdate) (string, error) {
	token, err := c.token()
	if err != nil {
		return "", err
	}

	fields := map[string]string{
		"name":            u.Name,
		"phone":           u.Phone,
		"bio":             u.Bio,
		"location":        u.Location,
		"age":             strconv.Itoa(u.Age),
		"education_level": u.EducationLevel,
		"education_grade": u.EducationGrade,
		"experience":      u.Experience,
		"skills":          models.JoinSkills(u.Skills),
	}
	var files []gateway.FormFile
	if u.PicturePath != "" {
		files = append(files, gateway.FormFile{Field: "profile_picture", Path: u.PicturePath})
	}
	if u.CVPath != "" {
		files = append(files, gateway.FormFile{Field: "cv", Path: u.CVPath})
	}

	var resp messageResponse
	if err := c.deps.Gateway.DoForm(ctx, http.MethodPut, "/auth/profile", fields, files, token, &resp); err != nil {
		return "", c.recover(err)
	}
	return resp.Message, nil
}
