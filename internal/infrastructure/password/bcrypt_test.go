package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("opensesame")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest == "opensesame" {
		t.Fatal("digest equals plaintext")
	}

	if !h.Verify("opensesame", digest) {
		t.Error("Verify() rejected the correct password")
	}
	if h.Verify("wrong", digest) {
		t.Error("Verify() accepted a wrong password")
	}
}

func TestVerifyRejectsMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Error("Verify() accepted a malformed digest")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		h := NewBcryptHasher(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Errorf("NewBcryptHasher(%d).cost = %d, want %d", cost, h.cost, bcrypt.DefaultCost)
		}
	}
}
