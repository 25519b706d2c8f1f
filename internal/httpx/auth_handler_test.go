package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLoginReq_PasswordForm(t *testing.T) {
	body := strings.NewReader("username=jane%40example.com&password=secret123")
	r := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := parseLoginReq(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Email != "jane@example.com" || req.Password != "secret123" {
		t.Errorf("got %+v", req)
	}
}

func TestParseLoginReq_FormEmailField(t *testing.T) {
	body := strings.NewReader("email=jane%40example.com&password=secret123")
	r := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := parseLoginReq(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Email != "jane@example.com" {
		t.Errorf("email = %q", req.Email)
	}
}

func TestParseLoginReq_JSON(t *testing.T) {
	body := strings.NewReader(`{"email":"jane@example.com","password":"secret123"}`)
	r := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	r.Header.Set("Content-Type", "application/json")

	req, err := parseLoginReq(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Email != "jane@example.com" || req.Password != "secret123" {
		t.Errorf("got %+v", req)
	}
}

func TestParseLoginReq_BadBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	r.Header.Set("Content-Type", "application/json")
	if _, err := parseLoginReq(r); err == nil {
		t.Error("want error for malformed json")
	}
}
