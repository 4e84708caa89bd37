// Package enquiry records quote requests submitted from the contact page.
package enquiry

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	bolt "go.etcd.io/bbolt"
)

// ErrInvalid wraps validation failures.
var ErrInvalid = errors.New("enquiry: invalid")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Enquiry is a contact or quote request.
type Enquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	ProductID string    `json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, k := range []string{"name", "email", "message"} {
		if msg, ok := f[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match field errors.
func (f FieldErrors) Is(target error) bool { return target == ErrInvalid }

// Validate trims e in place and checks the contact form rules.
func Validate(e *Enquiry) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Message = strings.TrimSpace(e.Message)
	e.ProductID = strings.TrimSpace(e.ProductID)

	errs := FieldErrors{}
	if len([]rune(e.Name)) < 2 {
		errs["name"] = "Please enter a valid name"
	}
	if !emailPattern.MatchString(e.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len([]rune(e.Message)) < 10 {
		errs["message"] = "Please enter a message (at least 10 characters)"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Store persists enquiries.
type Store interface {
	Save(ctx context.Context, e Enquiry) error
	List(ctx context.Context, limit int) ([]Enquiry, error)
}

// Service validates, stamps and stores enquiries.
type Service struct {
	store Store
	now   func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewService builds a Service over store.
func NewService(store Store) *Service {
	return &Service{
		store:   store,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Submit validates e, assigns a reference and stores it.
func (s *Service) Submit(ctx context.Context, e Enquiry) (Enquiry, error) {
	if err := Validate(&e); err != nil {
		return e, err
	}
	now := s.now().UTC()
	s.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	s.mu.Unlock()
	if err != nil {
		return e, fmt.Errorf("enquiry: new id: %w", err)
	}
	e.ID = id.String()
	e.CreatedAt = now
	if err := s.store.Save(ctx, e); err != nil {
		return e, fmt.Errorf("enquiry: save: %w", err)
	}
	return e, nil
}

// Recent returns the latest enquiries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Enquiry, error) {
	return s.store.List(ctx, limit)
}

var bucketName = []byte("enquiries")

// BoltStore keeps enquiries in a bbolt file keyed by ULID, so keys sort by time.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the enquiry database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("enquiry: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enquiry: init bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (b *BoltStore) Close() error { return b.db.Close() }

// Save implements Store.
func (b *BoltStore) Save(_ context.Context, e Enquiry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(e.ID), raw)
	})
}

// List implements Store. A limit <= 0 returns everything.
func (b *BoltStore) List(_ context.Context, limit int) ([]Enquiry, error) {
	var out []Enquiry
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var e Enquiry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("enquiry: decode %s: %w", k, err)
			}
			out = append(out, e)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}
