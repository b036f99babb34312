package standin

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"discount24/internal/domain"
	"discount24/internal/services/auth"
	"discount24/internal/services/menu"
)

const maxUpload = 8 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decode(w, r, &creds) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	s.mu.RLock()
	acct, ok := s.accounts[email]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	s.respondAuth(w, http.StatusOK, acct.vendorID, email, "Login successful")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	reg := domain.Registration{
		VendorName:  r.FormValue("vendorName"),
		Email:       r.FormValue("email"),
		ShopName:    r.FormValue("shopName"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Phone:       r.FormValue("phone"),
		Category:    domain.Category(r.FormValue("category")),
		Password:    r.FormValue("password"),
	}
	reg.RetypePassword = reg.Password
	if err := auth.ValidateRegistration(reg); err != nil {
		writeValidation(w, err)
		return
	}

	id := uuid.NewString()
	v := domain.Vendor{
		ID:          id,
		Name:        strings.TrimSpace(reg.ShopName),
		Description: strings.TrimSpace(reg.Description),
		Category:    reg.Category,
		Location:    strings.TrimSpace(reg.Location),
		Contact:     strings.TrimSpace(reg.Phone),
	}
	if f, hdr, err := r.FormFile("image"); err == nil {
		f.Close()
		v.Image = "/uploads/" + id + "/" + path.Base(hdr.Filename)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	s.mu.Lock()
	if _, taken := s.accounts[email]; taken {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	s.accounts[email] = account{vendorID: id, hash: hash}
	s.vendors = append(s.vendors, v)
	s.mu.Unlock()

	s.log.Info("vendor registered", "id", id, "shop", v.Name)
	s.respondAuth(w, http.StatusCreated, id, email, "Registration successful")
}

func (s *Server) respondAuth(w http.ResponseWriter, status int, vendorID, email, msg string) {
	token, err := s.tokens.issue(vendorID, email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.mu.RLock()
	v := s.vendors[s.vendorIndexLocked(vendorID)]
	s.mu.RUnlock()
	writeJSON(w, status, domain.AuthResult{Token: token, Vendor: &v, Message: msg})
}

func (s *Server) listVendors(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := slices.Clone(s.vendors)
	s.mu.RUnlock()
	if out == nil {
		out = []domain.Vendor{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateVendor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id != vendorFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "cannot update another vendor")
		return
	}
	var patch domain.VendorPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Category != nil && !patch.Category.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	s.mu.Lock()
	i := s.vendorIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	s.vendors[i] = patch.Apply(s.vendors[i])
	v := s.vendors[i]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"message": "Vendor updated", "vendor": v})
}

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	vendorID := r.URL.Query().Get("vendorId")
	if vendorID == "" {
		id, ok := s.caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, errInvalidToken.Error())
			return
		}
		vendorID = id
	}

	s.mu.RLock()
	known := s.vendorIndexLocked(vendorID) >= 0
	items := slices.Clone(s.menus[vendorID])
	s.mu.RUnlock()
	if !known {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var draft domain.MenuDraft
	if !decode(w, r, &draft) {
		return
	}
	if err := menu.Validate(draft); err != nil {
		writeValidation(w, err)
		return
	}
	vendorID := vendorFrom(r.Context())
	item := draft.Item(uuid.NewString())

	s.mu.Lock()
	s.menus[vendorID] = append(s.menus[vendorID], item)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var draft domain.MenuDraft
	if !decode(w, r, &draft) {
		return
	}
	if err := menu.Validate(draft); err != nil {
		writeValidation(w, err)
		return
	}
	vendorID := vendorFrom(r.Context())

	s.mu.Lock()
	items := s.menus[vendorID]
	i := menuIndex(items, id)
	if i < 0 {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	items[i] = draft.Item(id)
	item := items[i]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	vendorID := vendorFrom(r.Context())

	s.mu.Lock()
	items := s.menus[vendorID]
	i := menuIndex(items, id)
	if i >= 0 {
		s.menus[vendorID] = slices.Delete(items, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) vendorIndexLocked(id string) int {
	return slices.IndexFunc(s.vendors, func(v domain.Vendor) bool { return v.ID == id })
}

func menuIndex(items []domain.MenuItem, id string) int {
	return slices.IndexFunc(items, func(m domain.MenuItem) bool { return m.ID == id })
}
