package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", "tutoring-service", 24*time.Hour)

	token, err := codec.Issue(42)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	id, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected account id 42, got %d", id)
	}
}

func TestTokenRejections(t *testing.T) {
	codec := NewTokenCodec("test-secret", "tutoring-service", 24*time.Hour)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "empty",
			token: func() string { return "" },
		},
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenCodec("other-secret", "tutoring-service", 24*time.Hour)
				tok, _ := other.Issue(7)
				return tok
			},
		},
		{
			name: "expired",
			token: func() string {
				expired := NewTokenCodec("test-secret", "tutoring-service", -time.Minute)
				tok, _ := expired.Issue(7)
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.token()); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
