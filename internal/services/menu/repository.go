package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/google/uuid"

	"discount24/internal/domain"
)

const menuPath = "/api/vendors/menu/"

// ErrSuperseded is returned by List when Reset or a newer List ran while the
// request was in flight. The fetched items were not applied.
var ErrSuperseded = errors.New("menu listing superseded by a newer scope")

// Repository is the optimistic cache over one vendor's menu.
type Repository struct {
	transport domain.Transport
	log       *slog.Logger

	mu       sync.Mutex
	vendorID string
	items    []domain.MenuItem

	// scope advances on Reset and on every applied List. Mutations that
	// finish in an older scope leave the cache alone.
	scope uint64

	// listSeq orders List calls so only the latest started one applies.
	listSeq uint64
}

// New returns an empty Repository.
func New(transport domain.Transport, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{transport: transport, log: log}
}

// List fetches the menu and replaces the cache with it. An empty vendorID
// lists the signed-in vendor's own menu.
func (r *Repository) List(ctx context.Context, vendorID string) ([]domain.MenuItem, error) {
	r.mu.Lock()
	r.listSeq++
	seq, scope := r.listSeq, r.scope
	r.mu.Unlock()

	path := menuPath
	if vendorID != "" {
		path += "?vendorId=" + url.QueryEscape(vendorID)
	}

	var out []domain.MenuItem
	if err := r.transport.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	if out == nil {
		out = []domain.MenuItem{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listSeq != seq || r.scope != scope {
		return nil, ErrSuperseded
	}
	r.scope++
	r.vendorID = vendorID
	r.items = out
	r.log.Debug("menu refreshed", "vendor", vendorID, "count", len(out))
	return slices.Clone(out), nil
}

// Add appends draft under a temporary id, posts it and swaps in the server's
// copy once confirmed. The temporary entry is dropped if the post fails.
func (r *Repository) Add(ctx context.Context, draft domain.MenuDraft) (domain.MenuItem, error) {
	if err := Validate(draft); err != nil {
		return domain.MenuItem{}, err
	}

	tmp := draft.Item(domain.TempIDPrefix + uuid.NewString())
	r.mu.Lock()
	scope := r.scope
	r.items = append(r.items, tmp)
	r.mu.Unlock()

	var resp itemResponse
	err := r.transport.Do(ctx, http.MethodPost, menuPath, draft, &resp)
	created, ok := resp.item()
	if err == nil && !ok {
		err = &domain.DecodeError{Err: errors.New("created item has no id")}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope != scope {
		r.log.Debug("dropping late add response", "tmp", tmp.ID)
		if err != nil {
			return domain.MenuItem{}, fmt.Errorf("add menu item: %w", err)
		}
		return created, nil
	}

	i := r.indexLocked(tmp.ID)
	if err != nil {
		if i >= 0 {
			r.items = slices.Delete(r.items, i, i+1)
		}
		r.log.Warn("add menu item failed", "err", err)
		return domain.MenuItem{}, fmt.Errorf("add menu item: %w", err)
	}
	if i >= 0 {
		r.items[i] = created
	}
	return created, nil
}

// Update replaces item id with draft, restoring the previous value if the
// server rejects the change.
func (r *Repository) Update(ctx context.Context, id string, draft domain.MenuDraft) (domain.MenuItem, error) {
	if err := Validate(draft); err != nil {
		return domain.MenuItem{}, err
	}

	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return domain.MenuItem{}, fmt.Errorf("menu item %q: %w", id, domain.ErrNotFound)
	}
	prev := r.items[i]
	if prev.Pending() {
		r.mu.Unlock()
		return domain.MenuItem{}, fmt.Errorf("menu item %q: %w", id, domain.ErrPending)
	}
	next := draft.Item(id)
	r.items[i] = next
	scope := r.scope
	r.mu.Unlock()

	var resp itemResponse
	err := r.transport.Do(ctx, http.MethodPut, menuPath+url.PathEscape(id), draft, &resp)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		if r.scope == scope {
			if j := r.indexLocked(id); j >= 0 {
				r.items[j] = prev
			}
		}
		r.log.Warn("update menu item failed", "id", id, "err", err)
		return domain.MenuItem{}, fmt.Errorf("update menu item %q: %w", id, err)
	}
	if confirmed, ok := resp.item(); ok && confirmed.ID == id {
		next = confirmed
	}
	if r.scope == scope {
		if j := r.indexLocked(id); j >= 0 {
			r.items[j] = next
		}
	}
	return next, nil
}

// Remove deletes item id, putting it back at its old position if the server
// refuses. An item the server no longer has counts as removed.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("menu item %q: %w", id, domain.ErrNotFound)
	}
	prev := r.items[i]
	if prev.Pending() {
		r.mu.Unlock()
		return fmt.Errorf("menu item %q: %w", id, domain.ErrPending)
	}
	r.items = slices.Delete(r.items, i, i+1)
	scope := r.scope
	r.mu.Unlock()

	err := r.transport.Do(ctx, http.MethodDelete, menuPath+url.PathEscape(id), nil, nil)
	if err == nil || domain.IsStatus(err, http.StatusNotFound) {
		return nil
	}

	r.mu.Lock()
	if r.scope == scope && r.indexLocked(id) < 0 {
		r.items = slices.Insert(r.items, min(i, len(r.items)), prev)
	}
	r.mu.Unlock()
	r.log.Warn("remove menu item failed", "id", id, "err", err)
	return fmt.Errorf("remove menu item %q: %w", id, err)
}

// Items returns a copy of the cached menu.
func (r *Repository) Items() []domain.MenuItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// VendorID returns the vendor the cache was last listed for.
func (r *Repository) VendorID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vendorID
}

// Reset empties the cache and drops any response still in flight.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scope++
	r.vendorID = ""
	r.items = nil
}

func (r *Repository) indexLocked(id string) int {
	return slices.IndexFunc(r.items, func(m domain.MenuItem) bool { return m.ID == id })
}

// itemResponse accepts either a bare item or one wrapped as {"item": {...}}.
type itemResponse struct {
	domain.MenuItem
	Wrapped *domain.MenuItem `json:"item"`
}

func (r itemResponse) item() (domain.MenuItem, bool) {
	if r.Wrapped != nil && r.Wrapped.ID != "" {
		return *r.Wrapped, true
	}
	if r.ID != "" {
		return r.MenuItem, true
	}
	return domain.MenuItem{}, false
}

// Compile-time assertion that Repository implements domain.MenuRepository.
var _ domain.MenuRepository = (*Repository)(nil)
