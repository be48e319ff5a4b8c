// Package models defines the core data structures shared by the
// jobtrack client and server: jobs, applications, profiles,
// notifications and admin statistics.
package models

import "time"

// JobStatus tracks where a job lead sits in the user's pipeline.
type JobStatus string

const (
	// JobOpen is a lead the user has not applied to yet.
	JobOpen JobStatus = "Open"
	// JobApplied is set as a side effect of applying to an open job.
	JobApplied JobStatus = "Applied"
	// JobInterview marks a scheduled or completed interview.
	JobInterview JobStatus = "Interview"
	// JobOffered marks a received offer.
	JobOffered JobStatus = "Offered"
	// JobRejected marks a rejection.
	JobRejected JobStatus = "Rejected"
)

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobApplied, JobInterview, JobOffered, JobRejected:
		return true
	}
	return false
}

// Job represents a single tracked job lead owned by a user.
type Job struct {
	// ID is the unique identifier for the job.
	ID string `json:"id"`
	// Company is the hiring company name.
	Company string `json:"company"`
	// Position is the role title.
	Position string `json:"position"`
	// Status is the current pipeline status.
	Status JobStatus `json:"status"`
	// DateApplied is the date the user recorded for the lead.
	DateApplied time.Time `json:"date_applied"`
	// Notes holds free-text notes about the lead.
	Notes string `json:"notes"`
}

// ApplicationStatus tracks an application through admin review.
type ApplicationStatus string

const (
	// ApplicationPending is the initial status of every application.
	ApplicationPending ApplicationStatus = "Pending"
	// ApplicationShortlisted marks an application picked for review.
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	// ApplicationAccepted marks an accepted application.
	ApplicationAccepted ApplicationStatus = "Accepted"
	// ApplicationRejected marks a rejected application.
	ApplicationRejected ApplicationStatus = "Rejected"
)

// Valid reports whether s is one of the known application statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationShortlisted, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is a submitted application to a job, reviewed by admins.
// Applications are created by applying and mutated only through admin
// status updates; the client never deletes one.
type Application struct {
	// ID is the unique identifier for the application.
	ID string `json:"id"`
	// JobID links the application to its job.
	JobID string `json:"job_id"`
	// Name is the applicant's name captured at apply time.
	Name string `json:"name"`
	// Email is the applicant's email.
	Email string `json:"email"`
	// Age is the applicant's age.
	Age int `json:"age"`
	// DegreeClass is the applicant's degree classification.
	DegreeClass string `json:"degree_class"`
	// ProfilePicture references the applicant's stored picture.
	ProfilePicture string `json:"profile_picture"`
	// CoverLetter is the free-text cover letter.
	CoverLetter string `json:"cover_letter"`
	// CV references the stored CV document.
	CV string `json:"cv"`
	// Status is the admin review status.
	Status ApplicationStatus `json:"status"`
	// AppliedAt is when the application was submitted.
	AppliedAt time.Time `json:"applied_at"`
}

// Profile holds the per-user profile, replaced wholesale on update.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
	Age            int    `json:"age"`
	EducationLevel string `json:"education_level"`
	EducationGrade string `json:"education_grade"`
	Experience     string `json:"experience"`
	// Skills is an ordered list; on the wire it travels as a single
	// comma-joined string.
	Skills []string `json:"skills"`
	// ProfilePicture references the stored profile picture.
	ProfilePicture string `json:"profile_picture"`
	// CV references the stored CV document.
	CV string `json:"cv"`
}

// Notification is a server-generated message for a user. The client
// may only flip Read from false to true, never back.
type Notification struct {
	// ID is the unique identifier for the notification.
	ID string `json:"id"`
	// Message is the notification text.
	Message string `json:"message"`
	// Read reports whether the user has read the notification.
	Read bool `json:"read"`
	// CreatedAt is when the notification was created.
	CreatedAt time.Time `json:"created_at"`
}

// AdminStats is the read-only application summary shown to admins.
// It is recomputed server-side and re-fetched after any mutation that
// could change the counts.
type AdminStats struct {
	TotalApplications int                       `json:"totalApplications"`
	StatusBreakdown   map[ApplicationStatus]int `json:"statusBreakdown"`
}

// User represents an account as stored by the server.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Email is the login email.
	Email string
	// PasswordHash is the bcrypt hash of the password.
	PasswordHash []byte
	// IsAdmin marks administrator accounts.
	IsAdmin bool
	// Verified is set once the email verification link is followed.
	Verified bool
}
