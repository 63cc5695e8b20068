package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// Durable storage keys. One JSON record per profile, one plain string per
// avatar preference; no schema version field, a parse failure means absence.
const (
	profileKeyPrefix = "booka_user:"
	avatarKeyPrefix  = "userAvatar:"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using Redis as
// the durable key-value store.
type ProfileRepositoryImpl struct {
	client *redis.Client
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *redis.Client) domain.ProfileRepository {
	return &ProfileRepositoryImpl{client: client}
}

// Save implements domain.ProfileRepository: serializes and writes the full
// record synchronously. No TTL; the record lives until logout.
func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile *domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return r.client.Set(ctx, profileKeyPrefix+profile.ID, data, 0).Err()
}

// Find implements domain.ProfileRepository. A record that fails to
// deserialize is removed and reported as ErrProfileCorrupt so the caller can
// treat it as absent.
func (r *ProfileRepositoryImpl) Find(ctx context.Context, id string) (*domain.UserProfile, error) {
	data, err := r.client.Get(ctx, profileKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		r.client.Del(ctx, profileKeyPrefix+id)
		return nil, domain.ErrProfileCorrupt
	}
	return &profile, nil
}

// Delete implements domain.ProfileRepository: removes the record and the
// avatar preference together.
func (r *ProfileRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, profileKeyPrefix+id, avatarKeyPrefix+id).Err()
}

// SaveAvatar implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) SaveAvatar(ctx context.Context, profileID, avatar string) error {
	return r.client.Set(ctx, avatarKeyPrefix+profileID, avatar, 0).Err()
}

// FindAvatar implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) FindAvatar(ctx context.Context, profileID string) (string, error) {
	avatar, err := r.client.Get(ctx, avatarKeyPrefix+profileID).Result()
	if err == redis.Nil {
		return "", domain.ErrAvatarNotFound
	}
	if err != nil {
		return "", err
	}
	return avatar, nil
}
