package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"discount24/internal/app"
	"discount24/internal/directory"
	"discount24/internal/domain"
	"discount24/internal/standin"
	"discount24/pkg/logging"
)

func startStandin(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := standin.New(standin.Config{
		JWTSecret:  "e2e-secret",
		Seed:       true,
		BcryptCost: bcrypt.MinCost,
		Logger:     logging.New(io.Discard, slog.LevelError),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newApp(t *testing.T, apiURL, home string) (*app.Wire, *app.App) {
	t.Helper()
	w, err := app.NewWire(app.Config{
		Home:    home,
		APIURL:  apiURL,
		Timeout: 5 * time.Second,
		Logger:  logging.New(io.Discard, slog.LevelError),
	})
	require.NoError(t, err)
	return w, app.New(w)
}

func loginDemo(t *testing.T, a *app.App) {
	t.Helper()
	res, err := a.Auth.Login(context.Background(), domain.Credentials{
		Email:    standin.DemoEmail,
		Password: standin.DemoPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Vendor)
	require.Equal(t, "1", res.Vendor.ID)
}

func ids(vs []domain.Vendor) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestBrowseDirectory(t *testing.T) {
	ts := startStandin(t)
	_, a := newApp(t, ts.URL, t.TempDir())
	ctx := context.Background()

	all, err := a.Browse(ctx, directory.Query{}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(all))

	cafes, err := a.Browse(ctx, directory.Query{Category: "Cafe"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(cafes))

	found, err := a.Browse(ctx, directory.Query{Text: "BREAD"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(found))

	near := &domain.Coordinate{Latitude: 41.2995, Longitude: 69.2401}
	sorted, err := a.Browse(ctx, directory.Query{Near: near}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1", "4"}, ids(sorted))
	assert.Equal(t, near, a.LastQuery().Near)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ts := startStandin(t)
	home := t.TempDir()

	_, a := newApp(t, ts.URL, home)
	assert.False(t, a.Session.IsAuthenticated())
	loginDemo(t, a)

	_, restarted := newApp(t, ts.URL, home)
	assert.True(t, restarted.Session.IsAuthenticated())

	items, err := restarted.Menu.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	require.NoError(t, restarted.Logout())
	assert.False(t, restarted.Session.IsAuthenticated())
	assert.Empty(t, restarted.Menu.Items())

	_, again := newApp(t, ts.URL, home)
	assert.False(t, again.Session.IsAuthenticated())
}

func TestMenuRoundTrip(t *testing.T) {
	ts := startStandin(t)
	_, a := newApp(t, ts.URL, t.TempDir())
	ctx := context.Background()
	loginDemo(t, a)

	before, err := a.Menu.List(ctx, "")
	require.NoError(t, err)

	item, err := a.Menu.Add(ctx, domain.MenuDraft{Name: "X", Price: 5})
	require.NoError(t, err)
	assert.False(t, item.Pending())

	listed, err := a.Menu.List(ctx, "")
	require.NoError(t, err)
	var xs []domain.MenuItem
	for _, m := range listed {
		if m.Name == "X" {
			xs = append(xs, m)
		}
	}
	require.Len(t, xs, 1)
	assert.Equal(t, 5.0, xs[0].Price)
	assert.Equal(t, item.ID, xs[0].ID)

	discount := 10.0
	updated, err := a.Menu.Update(ctx, item.ID, domain.MenuDraft{Name: "X", Price: 6, Discount: &discount})
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.Price)

	require.NoError(t, a.Menu.Remove(ctx, item.ID))
	assert.Equal(t, before, a.Menu.Items())

	after, err := a.Menu.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProfileEdit(t *testing.T) {
	ts := startStandin(t)
	_, a := newApp(t, ts.URL, t.TempDir())
	ctx := context.Background()
	loginDemo(t, a)

	edit, err := a.EditProfile(ctx, "1")
	require.NoError(t, err)
	edit.Draft.Offers = "Two for one"
	v, err := edit.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Two for one", v.Offers)

	cached, err := a.Vendors.GetByID(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, "Two for one", cached.Offers)

	// Editing someone else's shop is refused and leaves the cache alone.
	other, err := a.EditProfile(ctx, "2")
	require.NoError(t, err)
	other.Draft.Name = "Hijacked"
	_, err = other.Commit(ctx)
	assert.True(t, domain.IsStatus(err, 403))
	other.Rollback()
	assert.Equal(t, "Golden Crust", other.Draft.Name)

	cached, err = a.Vendors.GetByID(ctx, "2", false)
	require.NoError(t, err)
	assert.Equal(t, "Golden Crust", cached.Name)
}

func TestRejectedTokenEndsSession(t *testing.T) {
	ts := startStandin(t)
	w, a := newApp(t, ts.URL, t.TempDir())
	ctx := context.Background()

	require.NoError(t, w.Session.SetToken("forged"))
	expired := 0
	w.Transport.OnAuthExpired(func() { expired++ })

	_, err := a.Menu.List(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.False(t, a.Session.IsAuthenticated())
	assert.Equal(t, 1, expired)

	_, ok, err := w.Tokens.LoadToken()
	require.NoError(t, err)
	assert.False(t, ok)

	// Anonymous calls still work and a wrong password is an ordinary error.
	_, err = a.Browse(ctx, directory.Query{}, true)
	require.NoError(t, err)
	_, err = a.Auth.Login(ctx, domain.Credentials{Email: standin.DemoEmail, Password: "nope"})
	assert.True(t, domain.IsStatus(err, 401))
	assert.Equal(t, 1, expired)
}

func TestRegisterAndSignIn(t *testing.T) {
	ts := startStandin(t)
	_, a := newApp(t, ts.URL, t.TempDir())
	ctx := context.Background()

	res, err := a.Auth.Register(ctx, domain.Registration{
		VendorName:     "Grace",
		Email:          "grace@example.com",
		ShopName:       "Grace's Pharmacy",
		Description:    "Prescriptions and wellness",
		Location:       "41.30,69.25",
		Phone:          "0123456789",
		Category:       domain.CategoryPharmacy,
		Password:       "s3cret!",
		RetypePassword: "s3cret!",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Vendor)
	assert.True(t, a.Session.IsAuthenticated())

	items, err := a.Menu.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	all, err := a.Browse(ctx, directory.Query{Category: "Pharmacy"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{res.Vendor.ID}, ids(all))
}
