package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hashed == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hashed, "secret1") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hashed, "secret2") {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	t.Parallel()

	// Google-authenticated accounts store an empty hash; no password
	// can ever match it.
	if CheckPassword("", "") {
		t.Fatal("empty hash must reject every password")
	}
}
