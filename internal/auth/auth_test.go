package auth

import (
	"testing"
	"time"
)

func TestIssueParse_Roundtrip(t *testing.T) {
	iss := Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
	tok, err := iss.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "user-42" {
		t.Errorf("subject = %q, want user-42", got)
	}
	if rem := iss.Remaining(tok); rem <= 0 || rem > time.Hour {
		t.Errorf("Remaining = %v, want (0, 1h]", rem)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issuer{Secret: []byte("one"), TTL: time.Hour}.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (Issuer{Secret: []byte("two"), TTL: time.Hour}).Parse(tok); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestParse_Expired(t *testing.T) {
	iss := Issuer{Secret: []byte("s"), TTL: -time.Minute}
	tok, err := iss.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(tok); err == nil {
		t.Error("expired token accepted")
	}
	if rem := iss.Remaining(tok); rem != 0 {
		t.Errorf("Remaining on expired token = %v, want 0", rem)
	}
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("correct4horse")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword("correct4horse", h) {
		t.Error("valid password rejected")
	}
	if CheckPassword("wrong4horse", h) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("abc123xy"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	for _, bad := range []string{"short1", "onlyletters", "12345678", "Password1"} {
		if err := ValidatePassword(bad); err == nil {
			t.Errorf("password %q accepted", bad)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	for _, bad := range []string{"nodomain", "user@", "u@tempmail.com", "u@sub.disposable.test"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("email %q accepted", bad)
		}
	}
}

func TestDisplayName(t *testing.T) {
	u := User{Email: "jane.doe@example.com"}
	if got := u.DisplayName(); got != "Jane Doe" {
		t.Errorf("DisplayName = %q, want Jane Doe", got)
	}
	u.FullName = "J. D."
	if got := u.DisplayName(); got != "J. D." {
		t.Errorf("DisplayName = %q, want J. D.", got)
	}
}
