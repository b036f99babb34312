package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"discount24/internal/domain"
)

const (
	loginPath    = "/api/vendors/login"
	registerPath = "/api/vendors/register"

	minPasswordLength    = 6
	minNameLength        = 2
	minDescriptionLength = 10
	minPhoneDigits       = 10
)

// Service talks to the auth endpoints and keeps the session in step.
type Service struct {
	transport domain.Transport
	session   domain.Session
	log       *slog.Logger
}

// New returns an auth service writing tokens into session.
func New(transport domain.Transport, session domain.Session, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{transport: transport, session: session, log: log}
}

// Login exchanges credentials for a session token.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return domain.AuthResult{}, domain.Invalid("email", "is required")
	}
	if creds.Password == "" {
		return domain.AuthResult{}, domain.Invalid("password", "is required")
	}

	var res domain.AuthResult
	if err := s.transport.Do(ctx, http.MethodPost, loginPath, creds, &res); err != nil {
		return domain.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	if err := s.keep(res); err != nil {
		return domain.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	s.log.Info("logged in", "email", creds.Email, "token", res.Token != "")
	return res, nil
}

// Register creates a shop account. The image, if any, is sent as the
// "image" file part.
func (s *Service) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	if err := ValidateRegistration(reg); err != nil {
		return domain.AuthResult{}, err
	}

	var res domain.AuthResult
	if err := s.transport.DoMultipart(ctx, http.MethodPost, registerPath, registrationForm(reg), &res); err != nil {
		return domain.AuthResult{}, fmt.Errorf("register: %w", err)
	}
	if err := s.keep(res); err != nil {
		return domain.AuthResult{}, fmt.Errorf("register: %w", err)
	}
	s.log.Info("registered shop", "shop", reg.ShopName, "token", res.Token != "")
	return res, nil
}

// Logout drops the session token.
func (s *Service) Logout() error {
	if err := s.session.ClearToken(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// keep stores the token when the server issued one. A response without a
// token (e.g. pending verification) leaves the session alone.
func (s *Service) keep(res domain.AuthResult) error {
	if res.Token == "" {
		return nil
	}
	return s.session.SetToken(res.Token)
}

// ValidateRegistration applies the sign-up form rules.
func ValidateRegistration(r domain.Registration) error {
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(r.VendorName)) < minNameLength:
		return domain.Invalid("vendorName", fmt.Sprintf("must be at least %d characters", minNameLength))
	case !validEmail(r.Email):
		return domain.Invalid("email", "must be a valid email address")
	case utf8.RuneCountInString(strings.TrimSpace(r.ShopName)) < minNameLength:
		return domain.Invalid("shopName", fmt.Sprintf("must be at least %d characters", minNameLength))
	case utf8.RuneCountInString(strings.TrimSpace(r.Description)) < minDescriptionLength:
		return domain.Invalid("description", fmt.Sprintf("must be at least %d characters", minDescriptionLength))
	case utf8.RuneCountInString(strings.TrimSpace(r.Location)) < minNameLength:
		return domain.Invalid("location", "is required")
	case countDigits(r.Phone) < minPhoneDigits:
		return domain.Invalid("phone", fmt.Sprintf("must have at least %d digits", minPhoneDigits))
	case !r.Category.Valid():
		return domain.Invalid("category", fmt.Sprintf("unknown category %q", r.Category))
	case utf8.RuneCountInString(r.Password) < minPasswordLength:
		return domain.Invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	case r.Password != r.RetypePassword:
		return domain.Invalid("retypePassword", "passwords do not match")
	}
	return nil
}

func registrationForm(r domain.Registration) domain.MultipartForm {
	form := domain.MultipartForm{
		Fields: []domain.FormField{
			{Name: "vendorName", Value: strings.TrimSpace(r.VendorName)},
			{Name: "email", Value: strings.TrimSpace(r.Email)},
			{Name: "shopName", Value: strings.TrimSpace(r.ShopName)},
			{Name: "description", Value: strings.TrimSpace(r.Description)},
			{Name: "location", Value: strings.TrimSpace(r.Location)},
			{Name: "phone", Value: strings.TrimSpace(r.Phone)},
			{Name: "category", Value: r.Category.String()},
			{Name: "password", Value: r.Password},
		},
	}
	if r.Image != nil {
		name := r.ImageName
		if name == "" {
			name = "image"
		}
		form.Files = append(form.Files, domain.FormFile{Field: "image", Filename: name, Content: r.Image})
	}
	return form
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil && addr.Name == "" && strings.Contains(addr.Address, "@")
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
