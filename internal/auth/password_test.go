package auth

import (
	"strings"
	"testing"
)

func TestPasswordRoundTrip(t *testing.T) {
	record, err := NewPasswordRecord("hunter2")
	if err != nil {
		t.Fatalf("NewPasswordRecord: %v", err)
	}

	if !VerifyPassword("hunter2", record) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("hunter3", record) {
		t.Error("wrong password verified")
	}
	if VerifyPassword("", record) {
		t.Error("empty password verified")
	}
}

func TestPasswordRecordShape(t *testing.T) {
	record, err := NewPasswordRecord("pw")
	if err != nil {
		t.Fatalf("NewPasswordRecord: %v", err)
	}

	salt, digest, ok := strings.Cut(record, "$")
	if !ok {
		t.Fatalf("record %q missing separator", record)
	}
	if len(salt) != saltBytes*2 {
		t.Errorf("salt length = %d, want %d hex chars", len(salt), saltBytes*2)
	}
	if len(digest) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(digest))
	}
}

func TestPasswordRecordsUseFreshSalts(t *testing.T) {
	a, err := NewPasswordRecord("same")
	if err != nil {
		t.Fatalf("NewPasswordRecord: %v", err)
	}
	b, err := NewPasswordRecord("same")
	if err != nil {
		t.Fatalf("NewPasswordRecord: %v", err)
	}
	if a == b {
		t.Error("two records for the same password share a salt")
	}
	if !VerifyPassword("same", a) || !VerifyPassword("same", b) {
		t.Error("records with distinct salts must both verify")
	}
}

func TestVerifyMalformedRecord(t *testing.T) {
	for _, record := range []string{"", "no-separator", "$", "salt$"} {
		if VerifyPassword("pw", record) {
			t.Errorf("malformed record %q verified", record)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	if hashPassword("pw", "salt") != hashPassword("pw", "salt") {
		t.Error("hash is not deterministic")
	}
	if hashPassword("pw", "salt") == hashPassword("pw", "other") {
		t.Error("different salts produced the same digest")
	}
}
