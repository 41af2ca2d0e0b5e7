package security

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "secret1" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	// a second call salts differently
	hash2, err := HashPassword("secret1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == hash2 {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	tests := []struct {
		name  string
		hash  string
		plain string
		want  bool
	}{
		{name: "correct password", hash: hash, plain: "secret1", want: true},
		{name: "wrong password", hash: hash, plain: "secret2", want: false},
		{name: "malformed stored hash", hash: "not-a-bcrypt-hash", plain: "secret1", want: false},
		{name: "empty stored hash", hash: "", plain: "secret1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyPassword(tt.hash, tt.plain)

			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
