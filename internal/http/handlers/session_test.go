package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"recus/internal/middleware"
)

func sessionRequest(t *testing.T, userID, email string) *http.Request {
	t.Helper()
	req := httptest.NewRequest("GET", "/v1/session", nil)
	if userID == "" {
		return req
	}
	return req.WithContext(middleware.ContextWithUser(req.Context(), userID, email))
}

func TestSession_GrantedWithSignerOptions(t *testing.T) {
	app := &App{
		Logger: zerolog.Nop(),
		Admins: &fakeAdmins{ids: map[string]bool{"user-1": true}},
	}

	rr := httptest.NewRecorder()
	app.Session(rr, sessionRequest(t, "user-1", "someone@test.fr"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp sessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Access != "granted" {
		t.Fatalf("access: got %q, want granted", resp.Access)
	}
	if len(resp.SignerOptions) != 2 {
		t.Fatalf("signer options: got %v", resp.SignerOptions)
	}
	if resp.SignerLocked {
		t.Fatal("unmapped identity should not be locked to a signer")
	}
	if resp.Signer != resp.SignerOptions[0] {
		t.Fatalf("default signer: got %q, want %q", resp.Signer, resp.SignerOptions[0])
	}
}

func TestSession_MappedIdentityIsLocked(t *testing.T) {
	app := &App{
		Logger: zerolog.Nop(),
		Admins: &fakeAdmins{ids: map[string]bool{"user-1": true}},
	}

	rr := httptest.NewRecorder()
	app.Session(rr, sessionRequest(t, "user-1", "Tariq@Test.FR"))

	var resp sessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.SignerLocked {
		t.Fatal("mapped identity should be locked")
	}
	if resp.Signer != "TRÉSORIER : RAJA TARIQ" {
		t.Fatalf("signer: got %q", resp.Signer)
	}
}

func TestSession_NotListedIsDenied(t *testing.T) {
	app := &App{
		Logger: zerolog.Nop(),
		Admins: &fakeAdmins{ids: map[string]bool{}},
	}

	rr := httptest.NewRecorder()
	app.Session(rr, sessionRequest(t, "user-2", "other@test.fr"))

	var resp sessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Access != "denied" {
		t.Fatalf("access: got %q, want denied", resp.Access)
	}
	if len(resp.SignerOptions) != 0 || resp.Signer != "" {
		t.Fatalf("denied session leaked signer data: %+v", resp)
	}
}

func TestSession_LookupErrorDenies(t *testing.T) {
	app := &App{
		Logger: zerolog.Nop(),
		Admins: &fakeAdmins{err: errors.New("db down")},
	}

	rr := httptest.NewRecorder()
	app.Session(rr, sessionRequest(t, "user-1", "someone@test.fr"))

	var resp sessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Access != "denied" {
		t.Fatalf("access on lookup failure: got %q, want denied", resp.Access)
	}
}

func TestSession_MissingIdentity(t *testing.T) {
	app := &App{Logger: zerolog.Nop(), Admins: &fakeAdmins{}}

	rr := httptest.NewRecorder()
	app.Session(rr, sessionRequest(t, "", ""))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		userID string
		admins *fakeAdmins
		want   int
	}{
		{"listed", "user-1", &fakeAdmins{ids: map[string]bool{"user-1": true}}, http.StatusNoContent},
		{"not listed", "user-2", &fakeAdmins{ids: map[string]bool{"user-1": true}}, http.StatusForbidden},
		{"lookup error", "user-1", &fakeAdmins{err: errors.New("db down")}, http.StatusForbidden},
		{"anonymous", "", &fakeAdmins{ids: map[string]bool{"user-1": true}}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &App{Logger: zerolog.Nop(), Admins: tc.admins}
			rr := httptest.NewRecorder()
			app.RequireAdmin(next).ServeHTTP(rr, sessionRequest(t, tc.userID, "x@test.fr"))
			if rr.Code != tc.want {
				t.Fatalf("status: got %d, want %d", rr.Code, tc.want)
			}
		})
	}
}
