package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libris/internal/database"
	"libris/internal/models"
	"libris/pkg/logger"
)

// Slot names mirror the browser storage keys the backend contract was built
// around. Clearing removes all of them together.
const (
	slotToken    = "token"
	slotUser     = "user"
	slotSession  = "session"
	slotUserRole = "userRole"
)

// StateEntry is one keyed slot in the local state database. Values are stored
// as raw strings; structured slots hold JSON documents.
type StateEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// Store is the durable holder for the single current session record and the
// denormalized identity slots written alongside it at login.
type Store struct {
	db *gorm.DB
}

// Open initialises a store backed by the SQLite database at the configured path.
func Open(cfg database.Config) (*Store, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	return New(db)
}

// New wraps an existing database handle, migrating the slot table when needed.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}

	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Session returns the stored session, or nil when none exists. Malformed slot
// contents are treated as absent rather than surfaced as an error.
func (s *Store) Session() (*models.Session, error) {
	raw, ok, err := s.read(slotSession)
	if err != nil || !ok {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		logger.WithModule("store").Warn("discarding malformed session slot")
		return nil, nil
	}
	return &session, nil
}

// SetSession overwrites the stored session in full. There are no merge
// semantics: refresh replaces the whole record.
func (s *Store) SetSession(session *models.Session) error {
	if session == nil {
		return errors.New("store: session is required")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("store: encode session: %w", err)
	}
	return s.write(slotSession, string(payload))
}

// SetIdentity persists the denormalized token, user, and role slots written
// after a successful login.
func (s *Store) SetIdentity(token string, user *models.User) error {
	if user == nil {
		return errors.New("store: user is required")
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("store: encode user: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range map[string]string{
			slotToken:    token,
			slotUser:     string(payload),
			slotUserRole: string(user.Role),
		} {
			if err := upsert(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetToken updates the denormalized bearer token slot, keeping it coherent
// with the session record after a refresh.
func (s *Store) SetToken(token string) error {
	return s.write(slotToken, token)
}

// Token returns the denormalized bearer token slot.
func (s *Store) Token() (string, bool, error) {
	return s.read(slotToken)
}

// User returns the stored account record, or nil when absent or malformed.
func (s *Store) User() (*models.User, error) {
	raw, ok, err := s.read(slotUser)
	if err != nil || !ok {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.WithModule("store").Warn("discarding malformed user slot")
		return nil, nil
	}
	return &user, nil
}

// Role returns the stored role slot.
func (s *Store) Role() (string, bool, error) {
	return s.read(slotUserRole)
}

// Clear removes the session and every related identity slot in one
// transaction. Clearing an already-empty store is not an error.
func (s *Store) Clear() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Where("key IN ?", []string{slotToken, slotUser, slotSession, slotUserRole}).
			Delete(&StateEntry{}).Error
	})
	if err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return database.Close(s.db)
}

func (s *Store) read(key string) (string, bool, error) {
	var entry StateEntry
	err := s.db.Take(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *Store) write(key, value string) error {
	if err := upsert(s.db, key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func upsert(db *gorm.DB, key, value string) error {
	entry := StateEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
