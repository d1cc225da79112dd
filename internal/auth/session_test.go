package auth

import "testing"

func TestSessionRoundTrip(t *testing.T) {
	id := Identity{Username: "alice", Email: "a@x.com"}

	token, err := IssueSession("s3cret", id)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	got, err := ParseSession("s3cret", token)
	if err != nil {
		t.Fatalf("ParseSession: %v", err)
	}
	if got != id {
		t.Errorf("ParseSession = %+v, want %+v", got, id)
	}
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	token, err := IssueSession("s3cret", Identity{Username: "alice"})
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	if _, err := ParseSession("other", token); err == nil {
		t.Error("token signed with another secret parsed")
	}
}

func TestSessionRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseSession("s3cret", token); err == nil {
			t.Errorf("garbage token %q parsed", token)
		}
	}
}
