// Package addressbook persists named recipient addresses. Entries live as a
// JSON array under a single KV key, same scheme as transaction history.
package addressbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/storage"
)

// BookKey is the KV key the address book is stored under.
const BookKey = "walletcore_address_book"

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrDuplicate      = errors.New("address already saved")
	ErrNotFound       = errors.New("entry not found")
)

// Entry is one saved recipient.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	LastUsed  int64  `json:"lastUsed"`
}

// Book manages saved recipients on top of a KV store.
type Book struct {
	kv  storage.KV
	log *slog.Logger

	mu sync.Mutex
}

func NewBook(kv storage.KV, log *slog.Logger) *Book {
	if log == nil {
		log = slog.Default()
	}
	return &Book{kv: kv, log: log.With("component", "addressbook")}
}

func (b *Book) load(ctx context.Context) []Entry {
	raw, err := b.kv.Get(ctx, BookKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			b.log.Warn("Failed to load address book", "error", err)
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		b.log.Warn("Address book payload is corrupt, starting empty", "error", err)
		return nil
	}
	return entries
}

func (b *Book) save(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode address book: %w", err)
	}
	if err := b.kv.Set(ctx, BookKey, string(raw)); err != nil {
		return fmt.Errorf("persist address book: %w", err)
	}
	return nil
}

// Add saves a new recipient. The address must be well-formed and not already
// present; addresses are compared case-insensitively.
func (b *Book) Add(ctx context.Context, name, address, note string) (*Entry, error) {
	if !domain.ValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load(ctx)
	for _, e := range entries {
		if domain.SameAddress(e.Address, address) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicate, e.Name, domain.ShortAddress(e.Address))
		}
	}

	now := time.Now().Unix()
	entry := Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   domain.NormalizeAddress(address),
		Note:      note,
		CreatedAt: now,
		LastUsed:  now,
	}
	entries = append(entries, entry)
	if err := b.save(ctx, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all entries, most recently used first.
func (b *Book) List(ctx context.Context) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load(ctx)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastUsed > entries[j].LastUsed
	})
	return entries
}

// Lookup finds an entry by name or by address.
func (b *Book) Lookup(ctx context.Context, nameOrAddress string) (*Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.load(ctx) {
		if e.Name == nameOrAddress || domain.SameAddress(e.Address, nameOrAddress) {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, nameOrAddress)
}

// Touch marks an entry as used, updating its last-used time and nothing
// else. Selecting a recipient never edits the recipient.
func (b *Book) Touch(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load(ctx)
	for i := range entries {
		if entries[i].ID == id {
			entries[i].LastUsed = time.Now().Unix()
			return b.save(ctx, entries)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Remove deletes an entry by ID.
func (b *Book) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load(ctx)
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return b.save(ctx, entries)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
