package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/financaspro/backend/internal/domain/error"
)

const testSecret = "test-session-secret-key"

func assertSessionErrorCode(t *testing.T, err error, want domainerror.SessionErrorCode) {
	t.Helper()
	var sessErr *domainerror.SessionError
	if !errors.As(err, &sessErr) {
		t.Fatalf("error %v is not a SessionError", err)
	}
	if sessErr.Code != want {
		t.Errorf("Code = %q, want %q", sessErr.Code, want)
	}
}

func TestSessionRoundtrip(t *testing.T) {
	svc := NewSessionService(testSecret)
	ctx := context.Background()
	ownerID := uuid.New()

	token, err := svc.Issue(ctx, ownerID, "dona@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue() returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	session, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() returned error: %v", err)
	}
	if session.OwnerID != ownerID {
		t.Errorf("OwnerID = %v, want %v", session.OwnerID, ownerID)
	}
	if session.Email != "dona@example.com" {
		t.Errorf("Email = %q", session.Email)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v, should be in the future", session.ExpiresAt)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	svc := NewSessionService(testSecret)
	_, err := svc.Verify(context.Background(), "")
	assertSessionErrorCode(t, err, domainerror.ErrCodeMissingToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewSessionService(testSecret)
	ctx := context.Background()

	token, err := svc.Issue(ctx, uuid.New(), "dona@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("Issue() returned error: %v", err)
	}

	_, err = svc.Verify(ctx, token)
	assertSessionErrorCode(t, err, domainerror.ErrCodeExpiredToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewSessionService(testSecret)
	_, err := svc.Verify(context.Background(), "not.a.jwt")
	assertSessionErrorCode(t, err, domainerror.ErrCodeInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	ctx := context.Background()
	token, err := NewSessionService("secret-a").Issue(ctx, uuid.New(), "dona@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue() returned error: %v", err)
	}

	_, err = NewSessionService("secret-b").Verify(ctx, token)
	assertSessionErrorCode(t, err, domainerror.ErrCodeInvalidToken)
}
