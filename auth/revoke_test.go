package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }

	if revoked, _ := r.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatal("fresh id reported revoked")
	}
	if err := r.Revoke(ctx, "jti-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatal("expected jti-1 to be revoked")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := r.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatal("revocation should lapse once the token has expired")
	}
}

func TestMemoryRevokerIgnoresAlreadyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }

	_ = r.Revoke(ctx, "old", now.Add(-time.Minute))
	if len(r.revoked) != 0 {
		t.Fatalf("expected nothing stored, got %d entries", len(r.revoked))
	}
}
