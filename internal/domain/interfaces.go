package domain

import "context"

// TokenStore persists the opaque session token in durable client storage.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (token string, ok bool, err error)
	DeleteToken() error
}

// Session is the process-wide view of the authenticated session.
type Session interface {
	SetToken(token string) error
	ClearToken() error
	Token() (string, bool)
	IsAuthenticated() bool
	Fingerprint() string
}

// Transport performs calls against the marketplace REST service.
type Transport interface {
	Do(ctx context.Context, method, path string, in, out any) error
	DoMultipart(ctx context.Context, method, path string, form MultipartForm, out any) error
}

// AuthService signs vendors in and out.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, reg Registration) (AuthResult, error)
	Logout() error
}

// VendorRepository is the cached view over the vendor directory.
type VendorRepository interface {
	ListAll(ctx context.Context) ([]Vendor, error)
	GetByID(ctx context.Context, id string, refresh bool) (Vendor, error)
	Update(ctx context.Context, id string, patch VendorPatch) (Vendor, error)
	Cached() []Vendor
	Categories() []Category
}

// MenuRepository is the cached view over one vendor's menu.
type MenuRepository interface {
	List(ctx context.Context, vendorID string) ([]MenuItem, error)
	Add(ctx context.Context, draft MenuDraft) (MenuItem, error)
	Update(ctx context.Context, id string, draft MenuDraft) (MenuItem, error)
	Remove(ctx context.Context, id string) error
	Items() []MenuItem
}
