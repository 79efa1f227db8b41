package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dndadmin/internal/client/config"
	"github.com/dmitrijs2005/dndadmin/internal/client/models"
)

// captureOutput redirects printlnFn for the duration of the test.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

type fakeAuth struct {
	loginErr  error
	loginArgs struct {
		email    string
		password string
	}

	restoreOK  bool
	restoreErr error

	logoutCalls int
	lastEmail   string
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) error {
	f.loginArgs.email = email
	f.loginArgs.password = string(password)
	return f.loginErr
}

func (f *fakeAuth) Restore(ctx context.Context) (bool, error) {
	return f.restoreOK, f.restoreErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuth) LastEmail(ctx context.Context) string { return f.lastEmail }

type fakeAdmin struct {
	profile    *models.Profile
	profileErr error
	profileN   int

	users    []models.User
	usersErr error

	updateErr error
	roleCalls []string
	statusIDs []int
	statuses  []bool

	// onUpdate runs inside UpdateRole, e.g. to dispatch a second action.
	onUpdate func()
}

func (f *fakeAdmin) Profile(ctx context.Context) (*models.Profile, error) {
	f.profileN++
	return f.profile, f.profileErr
}

func (f *fakeAdmin) Users(ctx context.Context) ([]models.User, error) {
	return f.users, f.usersErr
}

func (f *fakeAdmin) UpdateRole(ctx context.Context, userID int, role string) error {
	if f.onUpdate != nil {
		f.onUpdate()
	}
	f.roleCalls = append(f.roleCalls, fmt.Sprintf("%d:%s", userID, role))
	return f.updateErr
}

func (f *fakeAdmin) UpdateStatus(ctx context.Context, userID int, isActive bool) error {
	f.statusIDs = append(f.statusIDs, userID)
	f.statuses = append(f.statuses, isActive)
	return f.updateErr
}

func sampleUsers() []models.User {
	return []models.User{
		{ID: 1, Email: "admin@example.com", Username: "admin", Role: "Admin", IsActive: true},
		{ID: 2, Email: "dm@example.com", Username: "dungeonmaster", Role: "DM", IsActive: true},
		{ID: 5, Email: "player@example.com", Username: "player", Role: "User"},
	}
}

type testApp struct {
	*App
	auth    *fakeAuth
	admin   *fakeAdmin
	notices []Notice
}

func newTestApp(input string) *testApp {
	cfg := &config.Config{RoleOptions: []string{"User", "DM", "Admin"}}
	ta := &testApp{
		auth: &fakeAuth{},
		admin: &fakeAdmin{
			profile: &models.Profile{Username: "admin", Email: "admin@example.com"},
			users:   sampleUsers(),
		},
	}
	ta.App = newApp(cfg, ta.auth, ta.admin, bufio.NewReader(strings.NewReader(input)), &strings.Builder{}, nil)
	ta.SetNoticeSink(func(n Notice) { ta.notices = append(ta.notices, n) })
	return ta
}

// withSession puts the app in a logged in state with the sample users cached.
func (ta *testApp) withSession() *testApp {
	ta.App.loggedIn = true
	ta.profile = ta.admin.profile
	ta.users = sampleUsers()
	return ta
}

func (ta *testApp) messages() []string {
	out := make([]string, 0, len(ta.notices))
	for _, n := range ta.notices {
		out = append(out, n.Message)
	}
	return out
}
