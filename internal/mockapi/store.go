package mockapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Fixture store errors.
var (
	errNotFound        = errors.New("not found")
	errUserExists      = errors.New("email already registered")
	errInvalidDeadline = errors.New("invalid deadline format")
	errUnknownCategory = errors.New("unknown category")
)

// User is a mock account.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	MaxDone      int
	Subscription *Subscription
}

// Subscription is a mock paid-tier record.
type Subscription struct {
	ID          int64
	NextPayment time.Time
	Active      bool
}

// Task is a mock task record.
type Task struct {
	ID          int64
	UserID      int64
	Content     string
	Done        bool
	CompletedAt *time.Time
	Deadline    *time.Time
	Priority    int
	CategoryID  *int64
	SubtaskIDs  []int64
}

// Subtask is a mock subtask record.
type Subtask struct {
	ID      int64
	TaskID  int64
	Content string
	Done    bool
}

// Category is a mock category record.
type Category struct {
	ID     int64
	UserID int64
	Name   string
}

// Store is the in-memory fixture behind the mock Taskbench API. It stands in
// for the real service's database; everything is lost on restart by design.
type Store struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*User
	emails     map[string]int64
	tasks      map[int64]*Task
	subtasks   map[int64]*Subtask
	categories map[int64]*Category
}

// NewStore creates an empty fixture store.
func NewStore() *Store {
	return &Store{
		nextID:     1,
		users:      make(map[int64]*User),
		emails:     make(map[string]int64),
		tasks:      make(map[int64]*Task),
		subtasks:   make(map[int64]*Subtask),
		categories: make(map[int64]*Category),
	}
}

// Seed loads the development fixture accounts the mobile fakes shipped with.
func (s *Store) Seed() error {
	if _, err := s.CreateUser("normal@example.com", "qwertyui"); err != nil {
		return err
	}
	premium, err := s.CreateUser("premium@example.com", "11111111")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	premium.Subscription = &Subscription{
		ID:          s.allocateID(),
		NextPayment: time.Now().AddDate(0, 1, 0),
		Active:      true,
	}
	return nil
}

func (s *Store) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Store) CreateUser(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[email]; taken {
		return nil, errUserExists
	}

	user := &User{ID: s.allocateID(), Email: email, PasswordHash: hash}
	s.users[user.ID] = user
	s.emails[email] = user.ID
	return user, nil
}

// Authenticate returns the user when email/password match.
func (s *Store) Authenticate(email, password string) (*User, bool) {
	s.mu.Lock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	user := s.users[id]
	s.mu.Unlock()

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, false
	}
	return user, true
}

// UserByID looks up an account.
func (s *Store) UserByID(id int64) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	return user, ok
}

// ActivateSubscription creates or re-enables the user's subscription record.
func (s *Store) ActivateSubscription(userID int64) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, errNotFound
	}
	if user.Subscription != nil && user.Subscription.Active {
		return nil, errors.New("subscription already active")
	}
	user.Subscription = &Subscription{
		ID:          s.allocateID(),
		NextPayment: time.Now().AddDate(0, 1, 0),
		Active:      true,
	}
	return user.Subscription, nil
}

// DeactivateSubscription cancels the user's subscription.
func (s *Store) DeactivateSubscription(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return errNotFound
	}
	if user.Subscription == nil || !user.Subscription.Active {
		return errors.New("no active subscription")
	}
	user.Subscription.Active = false
	return nil
}

// BumpMaxDone raises the user's best single-day completion count when the
// current one beats it, and returns the record.
func (s *Store) BumpMaxDone(userID int64, doneToday int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return doneToday
	}
	if doneToday > user.MaxDone {
		user.MaxDone = doneToday
	}
	return user.MaxDone
}

// SetPassword replaces a user's password when the old one matches.
func (s *Store) SetPassword(userID int64, oldPassword, newPassword string) error {
	s.mu.Lock()
	user, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return errNotFound
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(oldPassword)) != nil {
		return errors.New("old password does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	user.PasswordHash = hash
	s.mu.Unlock()
	return nil
}
