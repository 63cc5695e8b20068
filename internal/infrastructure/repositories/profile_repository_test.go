package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testProfile(id string) *domain.UserProfile {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	return &domain.UserProfile{
		ID:         id,
		Email:      "user@example.com",
		Name:       "آرش",
		AuthMethod: domain.AuthMethodEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestProfileRepositoryImpl_SaveAndFind(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewProfileRepository(client)
	ctx := context.Background()

	profile := testProfile("123")
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Exists(ctx, "booka_user:123").Val() != 1 {
		t.Error("expected record under the booka_user key")
	}
	if ttl := client.TTL(ctx, "booka_user:123").Val(); ttl > 0 {
		t.Errorf("profile records must not expire, got ttl %v", ttl)
	}

	found, err := repo.Find(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != "123" || found.Email != "user@example.com" || found.Name != "آرش" {
		t.Errorf("round trip mismatch: %+v", found)
	}
	if !found.CreatedAt.Equal(profile.CreatedAt) {
		t.Errorf("expected createdAt preserved, got %v", found.CreatedAt)
	}
}

func TestProfileRepositoryImpl_FindMissing(t *testing.T) {
	repo := NewProfileRepository(setupTestRedis(t))

	if _, err := repo.Find(context.Background(), "missing"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileRepositoryImpl_FindCorrupt(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewProfileRepository(client)
	ctx := context.Background()

	if err := client.Set(ctx, "booka_user:bad", "{not json", 0).Err(); err != nil {
		t.Fatalf("failed to seed corrupt record: %v", err)
	}

	if _, err := repo.Find(ctx, "bad"); !errors.Is(err, domain.ErrProfileCorrupt) {
		t.Fatalf("expected ErrProfileCorrupt, got %v", err)
	}

	// The corrupt record is removed; the next read reports plain absence.
	if client.Exists(ctx, "booka_user:bad").Val() != 0 {
		t.Error("expected corrupt record removed")
	}
	if _, err := repo.Find(ctx, "bad"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound after cleanup, got %v", err)
	}
}

func TestProfileRepositoryImpl_Delete(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewProfileRepository(client)
	ctx := context.Background()

	if err := repo.Save(ctx, testProfile("123")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveAvatar(ctx, "123", "avatar_3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, "123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Profile and avatar go together.
	if client.Exists(ctx, "booka_user:123").Val() != 0 {
		t.Error("expected profile removed")
	}
	if client.Exists(ctx, "userAvatar:123").Val() != 0 {
		t.Error("expected avatar removed with the profile")
	}
}

func TestProfileRepositoryImpl_Avatar(t *testing.T) {
	repo := NewProfileRepository(setupTestRedis(t))
	ctx := context.Background()

	if _, err := repo.FindAvatar(ctx, "123"); !errors.Is(err, domain.ErrAvatarNotFound) {
		t.Errorf("expected ErrAvatarNotFound, got %v", err)
	}

	if err := repo.SaveAvatar(ctx, "123", "avatar_7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	avatar, err := repo.FindAvatar(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avatar != "avatar_7" {
		t.Errorf("expected avatar_7, got %q", avatar)
	}

	// Overwrite wins.
	if err := repo.SaveAvatar(ctx, "123", "avatar_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	avatar, _ = repo.FindAvatar(ctx, "123")
	if avatar != "avatar_1" {
		t.Errorf("expected avatar_1 after overwrite, got %q", avatar)
	}
}
