package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/planventure/planventure-api/internal/models"
	"github.com/planventure/planventure-api/internal/repo"
	"github.com/planventure/planventure-api/internal/tokens"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Trip{}, &models.Form{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &repo.GormRepo{DB: db}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo: newTestRepo(t),
		Issuer: &tokens.Issuer{
			AccessSecret:  []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
			Lifetimes:     tokens.DefaultLifetimes(),
		},
		Reset:       &tokens.ResetCodec{},
		FrontendURL: "http://localhost:3000",
	}
}

func newTestTripService(t *testing.T) *TripService {
	t.Helper()
	return &TripService{Repo: newTestRepo(t)}
}

func frozenReset(at time.Time) *tokens.ResetCodec {
	return &tokens.ResetCodec{Now: func() time.Time { return at }}
}
