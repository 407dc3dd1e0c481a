// Package registry owns the in-memory room and item state. It is the sole
// mutator of that state: every operation, including the listing read (which
// sweeps expired rooms), runs under one mutex, so concurrent callers observe
// a linearizable history.
package registry

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/piknikapp/piknik/internal/domain"
)

const (
	// DefaultTTL is how long a room outlives its scheduled date before the
	// sweep removes it.
	DefaultTTL = 10 * 24 * time.Hour

	// DefaultCat is assigned to items that arrive without a category.
	DefaultCat = "Other"

	// StateNeeded is the state every item starts in. StateDone is what
	// clients set when an item is claimed. Neither is enforced on patch;
	// state is an opaque string.
	StateNeeded = "needed"
	StateDone   = "done"
)

// Registry maps room codes to rooms and hands out item ids. Item ids are
// global across rooms, strictly increasing, and never reused.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*domain.Room
	nextID int64
	clock  Clock
	ttl    time.Duration
	logger *slog.Logger
}

// New creates an empty registry. A nil clock falls back to the system clock,
// a non-positive ttl to DefaultTTL, and a nil logger to slog.Default.
func New(clock Clock, ttl time.Duration, logger *slog.Logger) *Registry {
	if clock == nil {
		clock = SystemClock()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		rooms:  make(map[string]*domain.Room),
		clock:  clock,
		ttl:    ttl,
		logger: logger,
	}
}

// CreateRoom inserts a room if the code is unseen. Owner and date are fixed
// at first creation; calling again with the same code is a no-op. An empty
// date defaults to the current time, and any date is truncated to minute
// precision.
func (r *Registry) CreateRoom(code, owner, date string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code required", ErrInvalidArgument)
	}
	owner = strings.TrimSpace(owner)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[code]; ok {
		return nil
	}
	if date == "" {
		date = formatMinute(r.clock.Now())
	}
	r.rooms[code] = &domain.Room{Code: code, Owner: owner, Date: truncateMinute(date)}
	r.logger.Info("room created", "code", code, "owner", owner)
	return nil
}

// GetOrCreateRoom returns a snapshot of the room, creating it first if the
// code is unseen. An implicitly created room has no owner and the current
// time as its date. Merely viewing an unknown code therefore creates it;
// that is deliberate and matches how join-by-code is expected to work.
func (r *Registry) GetOrCreateRoom(code string) domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.getOrCreateLocked(code))
}

// ListRooms sweeps expired rooms, then summarizes the survivors sorted by
// date descending. Rooms with unparseable dates sort last; ties break on
// code so the order is deterministic. Note that listing mutates: expired
// rooms are gone afterwards.
func (r *Registry) ListRooms() []domain.RoomSummary {
	r.mu.Lock()
	r.sweep(r.clock.Now())
	out := make([]domain.RoomSummary, 0, len(r.rooms))
	for code, room := range r.rooms {
		out = append(out, domain.RoomSummary{
			Code:  code,
			Mask:  Mask(code),
			Date:  room.Date,
			Items: len(room.Items),
		})
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		di, oki := parseDate(out[i].Date)
		dj, okj := parseDate(out[j].Date)
		if oki != okj {
			return oki
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// AddItem appends an item to the room, creating the room if needed, and
// returns the new item's id. Name, unit and user must be non-empty after
// trimming; amount must be finite; an empty category becomes DefaultCat.
// Anyone may add items, there is no permission check here.
func (r *Registry) AddItem(code, name, unit string, amount float64, cat, user string) (int64, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	user = strings.TrimSpace(user)
	cat = strings.TrimSpace(cat)
	if name == "" || unit == "" || user == "" {
		return 0, fmt.Errorf("%w: name, unit and user are required", ErrInvalidArgument)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount must be a number", ErrInvalidArgument)
	}
	if cat == "" {
		cat = DefaultCat
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.getOrCreateLocked(code)
	r.nextID++
	item := domain.Item{
		ID:     r.nextID,
		Name:   name,
		Unit:   unit,
		Amount: amount,
		Cat:    cat,
		User:   user,
		State:  StateNeeded,
	}
	room.Items = append(room.Items, item)
	r.logger.Debug("item added", "code", code, "id", item.ID, "name", name, "user", user)
	return item.ID, nil
}

// PatchItemState sets the item's state verbatim. Only the item's author or
// the room's owner may do so. Any state string is accepted.
func (r *Registry) PatchItemState(code string, id int64, user, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return fmt.Errorf("%w: room %q", ErrNotFound, code)
	}
	for i := range room.Items {
		item := &room.Items[i]
		if item.ID != id {
			continue
		}
		if user != item.User && user != room.Owner {
			return fmt.Errorf("%w: %q may not modify item %d", ErrPermissionDenied, user, id)
		}
		item.State = state
		return nil
	}
	return fmt.Errorf("%w: item %d in room %q", ErrNotFound, id, code)
}

// DeleteItem removes the item, preserving the relative order of the rest.
// The same existence and permission rules as PatchItemState apply.
func (r *Registry) DeleteItem(code string, id int64, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return fmt.Errorf("%w: room %q", ErrNotFound, code)
	}
	for i := range room.Items {
		item := &room.Items[i]
		if item.ID != id {
			continue
		}
		if user != item.User && user != room.Owner {
			return fmt.Errorf("%w: %q may not modify item %d", ErrPermissionDenied, user, id)
		}
		room.Items = append(room.Items[:i], room.Items[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: item %d in room %q", ErrNotFound, id, code)
}

// sweep deletes rooms whose date has passed by more than the ttl. Rooms with
// missing or unparseable dates are never swept. Caller must hold the lock.
func (r *Registry) sweep(now time.Time) {
	for code, room := range r.rooms {
		d, ok := parseDate(room.Date)
		if !ok {
			continue
		}
		if now.After(d.Add(r.ttl)) {
			delete(r.rooms, code)
			r.logger.Info("room expired", "code", code, "date", room.Date)
		}
	}
}

func (r *Registry) getOrCreateLocked(code string) *domain.Room {
	room, ok := r.rooms[code]
	if !ok {
		room = &domain.Room{Code: code, Date: formatMinute(r.clock.Now())}
		r.rooms[code] = room
		r.logger.Info("room created", "code", code, "owner", "")
	}
	return room
}

// snapshot deep-copies a room so callers never hold a reference into the
// registry's state. Items is always non-nil so the room serializes with an
// empty array rather than null.
func snapshot(room *domain.Room) domain.Room {
	out := *room
	out.Items = make([]domain.Item, len(room.Items))
	copy(out.Items, room.Items)
	return out
}

// Mask partially redacts a room code for display: the first two characters
// followed by "**", or the whole code plus "*" for shorter codes. Cosmetic
// only; it grants no protection.
func Mask(code string) string {
	runes := []rune(code)
	if len(runes) >= 2 {
		return string(runes[:2]) + "**"
	}
	return code + "*"
}
