package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAudit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/audit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req["contractAddress"] != "0x1234567890abcdef1234567890abcdef12345678" {
			t.Errorf("unexpected address %q", req["contractAddress"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RiskAssessment{
			RiskScore: 30,
			RiskLevel: "Low",
			Summary:   "Standard token contract.",
			KeyIssues: []string{},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Audit(context.Background(), "0x1234567890abcdef1234567890abcdef12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RiskScore != 30 || got.RiskLevel != "Low" {
		t.Errorf("unexpected assessment: %+v", got)
	}
}

func TestAudit_AssessmentUnder500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(RiskAssessment{
			RiskScore: 50,
			RiskLevel: "SystemError",
			Summary:   "The risk audit could not be completed. Please try again later.",
			KeyIssues: []string{},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Audit(context.Background(), "0x1234567890abcdef1234567890abcdef12345678")
	if err != nil {
		t.Fatalf("a renderable body must not surface as an error, got: %v", err)
	}
	if got.RiskLevel != "SystemError" {
		t.Errorf("unexpected risk level %q", got.RiskLevel)
	}
}

func TestAudit_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Invalid contract address",
			"details": "invalid contract address: bad hex",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Audit(context.Background(), "0xbad")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid contract address" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestAudit_UnexpectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Audit(context.Background(), "0x1234567890abcdef1234567890abcdef12345678")
	if err == nil {
		t.Fatal("expected an error for a non-JSON body")
	}
}

func TestAudit_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.Audit(context.Background(), "0x1234567890abcdef1234567890abcdef12345678")
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
