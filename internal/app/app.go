package app

import (
	"context"

	"discount24/internal/directory"
	"discount24/internal/domain"
	"discount24/internal/services/vendor"
)

// App is what the CLI commands talk to.
type App struct {
	Auth    domain.AuthService
	Session domain.Session
	Vendors domain.VendorRepository
	Menu    domain.MenuRepository

	profiles  *vendor.Repository
	directory *directory.Engine
	resetMenu func()
}

// New builds an App over an existing Wire.
func New(w *Wire) *App {
	return &App{
		Auth:      w.Auth,
		Session:   w.Session,
		Vendors:   w.Vendors,
		Menu:      w.Menu,
		profiles:  w.Vendors,
		directory: w.Directory,
		resetMenu: w.Menu.Reset,
	}
}

// Browse returns the directory view for q. The cached directory is used
// unless it is empty or refresh is set.
func (a *App) Browse(ctx context.Context, q directory.Query, refresh bool) ([]domain.Vendor, error) {
	vendors := a.Vendors.Cached()
	if refresh || len(vendors) == 0 {
		var err error
		if vendors, err = a.Vendors.ListAll(ctx); err != nil {
			return nil, err
		}
	}
	return a.directory.Apply(vendors, q), nil
}

// LastQuery returns the parameters of the most recent Browse.
func (a *App) LastQuery() directory.Query { return a.directory.Last() }

// EditProfile refreshes the directory and opens an edit draft of vendor id.
func (a *App) EditProfile(ctx context.Context, id string) (*vendor.ProfileEdit, error) {
	if _, err := a.profiles.GetByID(ctx, id, true); err != nil {
		return nil, err
	}
	return a.profiles.BeginEdit(id)
}

// Logout clears the session and forgets the signed-in vendor's menu.
func (a *App) Logout() error {
	if err := a.Auth.Logout(); err != nil {
		return err
	}
	a.resetMenu()
	return nil
}
