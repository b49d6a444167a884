package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/pixelforge/backoffice/internal/client/storage"
)

var (
	authKey    = []byte("current")
	profileKey = []byte("current")
)

// Compile-time check that Storage implements storage.AuthStorage
var _ storage.AuthStorage = (*Storage)(nil)

// SaveAuth stores the token pair
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(auth)
		if err != nil {
			return fmt.Errorf("failed to marshal auth data: %w", err)
		}

		if err := bucket.Put(authKey, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}

		return nil
	})
}

// GetAuth retrieves the stored token pair
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth *storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(authKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}

		auth = &storage.AuthData{}
		if err := json.Unmarshal(data, auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return auth, nil
}

// DeleteAuth removes the stored token pair. Deleting a missing record
// is a no-op so logout can be called repeatedly.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}

		return nil
	})
}

// SaveProfile stores the cached user profile
func (s *Storage) SaveProfile(ctx context.Context, profile *storage.ProfileData) error {
	if profile == nil {
		return fmt.Errorf("profile data is nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		data, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("failed to marshal profile data: %w", err)
		}

		if err := bucket.Put(profileKey, data); err != nil {
			return fmt.Errorf("failed to save profile data: %w", err)
		}

		return nil
	})
}

// GetProfile retrieves the cached user profile
func (s *Storage) GetProfile(ctx context.Context) (*storage.ProfileData, error) {
	var profile *storage.ProfileData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		data := bucket.Get(profileKey)
		if data == nil {
			return storage.ErrProfileNotFound
		}

		profile = &storage.ProfileData{}
		if err := json.Unmarshal(data, profile); err != nil {
			return fmt.Errorf("failed to unmarshal profile data: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile removes the cached profile; missing record is a no-op
func (s *Storage) DeleteProfile(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		if err := bucket.Delete(profileKey); err != nil {
			return fmt.Errorf("failed to delete profile data: %w", err)
		}

		return nil
	})
}

// Clear removes both the token pair and the cached profile in one transaction
func (s *Storage) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		authBucket := tx.Bucket(bucketAuth)
		if authBucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		if err := authBucket.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}

		profileBucket := tx.Bucket(bucketProfile)
		if profileBucket == nil {
			return fmt.Errorf("profile bucket not found")
		}
		if err := profileBucket.Delete(profileKey); err != nil {
			return fmt.Errorf("failed to delete profile data: %w", err)
		}

		return nil
	})
}
