package controller

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate_SendsAllFieldsAndFiles(t *testing.T) {
	var form map[string]string
	var fileFields []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/auth/profile", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = map[string]string{}
		for k := range r.MultipartForm.Value {
			form[k] = r.FormValue(k)
		}
		for k := range r.MultipartForm.File {
			fileFields = append(fileFields, k)
		}
		w.Write([]byte(`{"message":"Profile updated successfully"}`))
	})
	deps, _ := newTestDeps(t, handler, false)
	c := NewProfile(deps)

	cvPath := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(cvPath, []byte("pdf bytes"), 0600))

	msg, err := c.Update(context.Background(), ProfileUpdate{
		Name:           "Ada",
		Phone:          "555",
		Bio:            "bio",
		Location:       "London",
		Age:            30,
		EducationLevel: "BSc",
		EducationGrade: "First",
		Experience:     "5y",
		Skills:         []string{"Go", "SQL"},
		CVPath:         cvPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", msg)

	// Full-replace semantics: every scalar field resent on each submit.
	for _, field := range []string{"name", "phone", "bio", "location", "age", "education_level", "education_grade", "experience", "skills"} {
		assert.Contains(t, form, field)
	}
	assert.Equal(t, "Go, SQL", form["skills"])
	assert.Equal(t, "30", form["age"])
	assert.Equal(t, []string{"cv"}, fileFields)
}
