package services

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/celadonapp/celadon-backend/internal/database"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func TestCreateAndValidateSession(t *testing.T) {
	setupTestRedis(t)

	token, err := CreateSession("user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	userID, ok := ValidateSession(token)
	if !ok || userID != "user-1" {
		t.Fatalf("expected valid session for user-1, got %q ok=%v", userID, ok)
	}

	if _, ok := ValidateSession("bogus"); ok {
		t.Fatalf("bogus token must not validate")
	}
	if _, ok := ValidateSession(""); ok {
		t.Fatalf("empty token must not validate")
	}
}

func TestCreateSessionReplacesExisting(t *testing.T) {
	setupTestRedis(t)

	first, _ := CreateSession("user-1")
	second, _ := CreateSession("user-1")

	if _, ok := ValidateSession(first); ok {
		t.Fatalf("old session should be invalidated by a new login")
	}
	if _, ok := ValidateSession(second); !ok {
		t.Fatalf("new session should be valid")
	}
}

func TestInvalidateSession(t *testing.T) {
	setupTestRedis(t)

	token, _ := CreateSession("user-1")
	if err := InvalidateSession(token); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok := ValidateSession(token); ok {
		t.Fatalf("invalidated session must not validate")
	}

	// Invalidating nothing is fine.
	if err := InvalidateSession(""); err != nil {
		t.Fatalf("empty token invalidate: %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	mr := setupTestRedis(t)

	token, _ := CreateSession("user-1")
	mr.FastForward(SessionDuration + 1)
	if _, ok := ValidateSession(token); ok {
		t.Fatalf("session should expire after its TTL")
	}
}
