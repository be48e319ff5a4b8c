// Package main runs the interactive jobtrack client: an authenticated
// shell over the API with a durable session, optimistic job mutations
// and background notification polling.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mkravets/jobtrack/internal/client/controller"
	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/client/guard"
	"github.com/mkravets/jobtrack/internal/client/notify"
	"github.com/mkravets/jobtrack/internal/client/session"
	"github.com/mkravets/jobtrack/internal/config"
	"github.com/mkravets/jobtrack/internal/logger"
	"github.com/mkravets/jobtrack/internal/models"
)

var (
	version   string
	buildDate string
)

// app bundles the client pieces the shell commands operate on.
type app struct {
	in       *bufio.Reader
	sess     *session.Store
	auth     *controller.Auth
	jobs     *controller.Jobs
	profile  *controller.Profile
	applying *controller.Applications
	admin    *controller.Admin
	poller   *notify.Poller
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// enter checks the route policy for the requested surface and prints
// the redirect target when entry is denied.
func (a *app) enter(kind guard.RouteKind) bool {
	d := guard.CanEnter(kind, a.sess)
	if !d.Allow {
		fmt.Printf("Not available here, go to %s\n", d.RedirectTo)
		return false
	}
	return true
}

func (a *app) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, controller.ErrSessionExpired):
		fmt.Println("Session expired, please log in again")
	case errors.Is(err, controller.ErrNotAuthenticated):
		fmt.Println("Please log in first")
	case gateway.IsNetwork(err):
		fmt.Println("Server unreachable, change kept local where possible:", err)
	default:
		fmt.Println("Error:", err)
	}
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")
	if err := a.auth.Login(ctx, email, password); err != nil {
		a.report(err)
		return
	}
	fmt.Printf("Logged in as %s\n", a.sess.Role())
	a.poller.Start(ctx)
	if err := a.jobs.Refresh(ctx); err != nil {
		a.report(err)
	}
}

func (a *app) listJobs(filter models.JobStatus) {
	jobs := a.jobs.Jobs(filter)
	if len(jobs) == 0 {
		fmt.Println("No jobs")
		return
	}
	for _, j := range jobs {
		fmt.Printf("%s  %-10s %s @ %s\n", j.ID, j.Status, j.Position, j.Company)
	}
}

func (a *app) promptJob() controller.JobPayload {
	return controller.JobPayload{
		Company:     a.prompt("company: "),
		Position:    a.prompt("position: "),
		Status:      models.JobStatus(a.prompt("status (Open/Applied/Interview/Offered/Rejected): ")),
		DateApplied: a.prompt("date applied (YYYY-MM-DD): "),
		Notes:       a.prompt("notes: "),
	}
}

func (a *app) showProfile(ctx context.Context) {
	p, err := a.profile.Fetch(ctx)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Printf("%s <%s>\n", p.Name, p.Email)
	fmt.Printf("  %s, %s, age %d\n", p.Phone, p.Location, p.Age)
	fmt.Printf("  %s (%s), %s\n", p.EducationLevel, p.EducationGrade, p.Experience)
	fmt.Printf("  skills: %s\n", models.JoinSkills(p.Skills))
}

func (a *app) editProfile(ctx context.Context) {
	age, _ := strconv.Atoi(a.prompt("age: "))
	u := controller.ProfileUpdate{
		Name:           a.prompt("name: "),
		Phone:          a.prompt("phone: "),
		Bio:            a.prompt("bio: "),
		Location:       a.prompt("location: "),
		Age:            age,
		EducationLevel: a.prompt("education level: "),
		EducationGrade: a.prompt("education grade: "),
		Experience:     a.prompt("experience: "),
		Skills:         models.SplitSkills(a.prompt("skills (comma separated): ")),
		PicturePath:    a.prompt("picture file (empty to keep): "),
		CVPath:         a.prompt("cv file (empty to keep): "),
	}
	msg, err := a.profile.Update(ctx, u)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Println(msg)
}

func (a *app) listNotifications() {
	notes := a.poller.Notifications()
	if len(notes) == 0 {
		fmt.Println("No notifications")
		return
	}
	for _, n := range notes {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Printf("%s %s  %s\n", mark, n.ID, n.Message)
	}
}

func (a *app) adminApps(ctx context.Context) {
	if err := a.admin.RefreshApplications(ctx); err != nil {
		a.report(err)
		return
	}
	apps := a.admin.Applications()
	if len(apps) == 0 {
		fmt.Println("No applications match")
		return
	}
	for _, app := range apps {
		fmt.Printf("%s  %-12s %s <%s> age %d, %s\n",
			app.ID, app.Status, app.Name, app.Email, app.Age, app.DegreeClass)
	}
}

func (a *app) adminStats(ctx context.Context) {
	if err := a.admin.RefreshStats(ctx); err != nil {
		a.report(err)
		return
	}
	stats := a.admin.Stats()
	fmt.Printf("Total applications: %d\n", stats.TotalApplications)
	for status, count := range stats.StatusBreakdown {
		fmt.Printf("  %-12s %d\n", status, count)
	}
}

func (a *app) adminFilter(ctx context.Context) {
	ageMin, _ := strconv.Atoi(a.prompt("min age (0 for any): "))
	ageMax, _ := strconv.Atoi(a.prompt("max age (0 for any): "))
	f := controller.Filters{
		Status:      models.ApplicationStatus(a.prompt("status (empty for any): ")),
		AgeMin:      ageMin,
		AgeMax:      ageMax,
		DegreeClass: a.prompt("degree class (empty for any): "),
	}
	if err := a.admin.SetFilters(ctx, f); err != nil {
		a.report(err)
		return
	}
	a.adminApps(ctx)
}

func help() {
	fmt.Println(`Commands:
  register | verify <token> | login | logout | forgot | reset
  jobs [status] | addjob | editjob <id> | deljob <id>
  apply <id> | applydocs <id>
  profile | editprofile
  notifications | read <id>
  apps | stats | filter | setstatus <id> <status> | batch <status>
  help | exit`)
}

func (a *app) run(ctx context.Context) {
	for {
		line := a.prompt("jobtrack> ")
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			help()
		case "register":
			name := a.prompt("name: ")
			email := a.prompt("email: ")
			password := a.prompt("password: ")
			msg, err := a.auth.Register(ctx, name, email, password)
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println(msg)
		case "verify":
			if len(args) < 2 {
				fmt.Println("Usage: verify <token>")
				continue
			}
			msg, err := a.auth.Verify(ctx, args[1])
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println(msg)
		case "login":
			a.login(ctx)
		case "logout":
			if err := a.auth.Logout(); err != nil {
				a.report(err)
				continue
			}
			fmt.Println("Logged out")
		case "forgot":
			msg, err := a.auth.ForgotPassword(ctx, a.prompt("email: "))
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println(msg)
		case "reset":
			token := a.prompt("reset token: ")
			password := a.prompt("new password: ")
			msg, err := a.auth.ResetPassword(ctx, token, password)
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println(msg)
		case "jobs":
			if !a.enter(guard.RouteUser) {
				continue
			}
			if err := a.jobs.Refresh(ctx); err != nil {
				a.report(err)
				continue
			}
			var filter models.JobStatus
			if len(args) > 1 {
				filter = models.JobStatus(args[1])
			}
			a.listJobs(filter)
		case "addjob":
			if !a.enter(guard.RouteUser) {
				continue
			}
			created, err := a.jobs.Create(ctx, a.promptJob())
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println("Created", created.ID)
		case "editjob":
			if len(args) < 2 {
				fmt.Println("Usage: editjob <id>")
				continue
			}
			if !a.enter(guard.RouteUser) {
				continue
			}
			if _, err := a.jobs.Update(ctx, args[1], a.promptJob()); err != nil {
				a.report(err)
				continue
			}
			fmt.Println("Updated")
		case "deljob":
			if len(args) < 2 {
				fmt.Println("Usage: deljob <id>")
				continue
			}
			if !a.enter(guard.RouteUser) {
				continue
			}
			err := a.jobs.Delete(ctx, args[1], func(j models.Job) bool {
				answer := a.prompt(fmt.Sprintf("Delete %s @ %s? [y/N]: ", j.Position, j.Company))
				return strings.EqualFold(answer, "y")
			})
			if errors.Is(err, controller.ErrCancelled) {
				fmt.Println("Kept")
				continue
			}
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println("Deleted")
		case "apply":
			if len(args) < 2 {
				fmt.Println("Usage: apply <id>")
				continue
			}
			if !a.enter(guard.RouteUser) {
				continue
			}
			job, err := a.jobs.Apply(ctx, args[1])
			if errors.Is(err, controller.ErrNotOpen) {
				fmt.Println("Only open jobs can be applied to")
				continue
			}
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Printf("Applied, job is now %s\n", job.Status)
		case "applydocs":
			if len(args) < 2 {
				fmt.Println("Usage: applydocs <id>")
				continue
			}
			if !a.enter(guard.RouteUser) {
				continue
			}
			cover := a.prompt("cover letter: ")
			cv := a.prompt("cv file (empty to use stored): ")
			app, err := a.applying.ApplyToJob(ctx, args[1], cover, cv)
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Printf("Application %s submitted (%s)\n", app.ID, app.Status)
		case "profile":
			if !a.enter(guard.RouteUser) {
				continue
			}
			a.showProfile(ctx)
		case "editprofile":
			if !a.enter(guard.RouteUser) {
				continue
			}
			a.editProfile(ctx)
		case "notifications":
			if !a.enter(guard.RouteUser) {
				continue
			}
			fmt.Printf("%d unread\n", a.poller.Unread())
			a.listNotifications()
		case "read":
			if len(args) < 2 {
				fmt.Println("Usage: read <id>")
				continue
			}
			if !a.enter(guard.RouteUser) {
				continue
			}
			if err := a.poller.MarkRead(ctx, args[1]); err != nil {
				fmt.Println("Marked locally, server update failed:", err)
				continue
			}
			fmt.Println("Marked as read")
		case "apps":
			if !a.enter(guard.RouteAdmin) {
				continue
			}
			a.adminApps(ctx)
		case "stats":
			if !a.enter(guard.RouteAdmin) {
				continue
			}
			a.adminStats(ctx)
		case "filter":
			if !a.enter(guard.RouteAdmin) {
				continue
			}
			a.adminFilter(ctx)
		case "setstatus":
			if len(args) < 3 {
				fmt.Println("Usage: setstatus <id> <status>")
				continue
			}
			if !a.enter(guard.RouteAdmin) {
				continue
			}
			err := a.admin.UpdateStatus(ctx, args[1], models.ApplicationStatus(args[2]))
			if errors.Is(err, controller.ErrInvalidStatus) {
				fmt.Println("Unknown status:", args[2])
				continue
			}
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Println("Status updated")
		case "batch":
			if len(args) < 2 {
				fmt.Println("Usage: batch <status>")
				continue
			}
			if !a.enter(guard.RouteAdmin) {
				continue
			}
			n, err := a.admin.BatchUpdateStatus(ctx, models.ApplicationStatus(args[1]))
			if errors.Is(err, controller.ErrInvalidStatus) {
				fmt.Println("Unknown status:", args[1])
				continue
			}
			if err != nil {
				a.report(err)
				continue
			}
			fmt.Printf("Updated %d applications\n", n)
		case "exit":
			a.poller.Stop()
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("jobtrack client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
			return
		}
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Warn"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	sess, err := session.NewStore(options.StateFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load session state:", err)
		os.Exit(1)
	}

	gw := gateway.New(options.ServerURL, log.Log)

	var poller *notify.Poller
	endSession := func() {
		// The hook can fire from the poll loop itself, so stop from a
		// fresh goroutine to avoid waiting on our own exit.
		go poller.Stop()
		fmt.Println("\nSession ended, please log in again")
	}
	poller = notify.New(gw, sess, log.Log, notify.DefaultInterval, endSession)

	deps := controller.Deps{
		Gateway:      gw,
		Session:      sess,
		Log:          log.Log,
		OnSessionEnd: endSession,
	}

	a := &app{
		in:       bufio.NewReader(os.Stdin),
		sess:     sess,
		auth:     controller.NewAuth(deps),
		jobs:     controller.NewJobs(deps),
		profile:  controller.NewProfile(deps),
		applying: controller.NewApplications(deps),
		admin:    controller.NewAdmin(deps),
		poller:   poller,
	}

	ctx := context.Background()
	if sess.Role() != session.RoleGuest {
		fmt.Printf("Welcome back (%s)\n", sess.Role())
		poller.Start(ctx)
	}
	help()
	a.run(ctx)
}
