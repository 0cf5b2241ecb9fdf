package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/dealflow-backend/internal/logger"
)

func newTestHarmonicClient(t *testing.T, baseURL string, maxRetries int) *harmonicClient {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return &harmonicClient{
		log:        log,
		baseURL:    baseURL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		maxRetries: maxRetries,
	}
}

func TestGetPersonsByIDs_SendsQueryAndDecodesResponse(t *testing.T) {
	var gotAPIKey string
	var gotReq graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"getPersonsByIds": [{"fullName": "Jane Doe", "entityUrn": "urn:harmonic:person:42", "socials": {"linkedin": {"url": "https://linkedin.com/in/jane"}}}]}}`))
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 0)
	people, err := client.GetPersonsByIDs(context.Background(), []int64{42})
	if err != nil {
		t.Fatalf("GetPersonsByIDs: %v", err)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("expected apikey header, got %q", gotAPIKey)
	}
	if gotReq.Variables["getPersonByIdsIds"] == nil {
		t.Fatalf("expected ids variable, got %v", gotReq.Variables)
	}
	if len(people) != 1 || people[0].FullName != "Jane Doe" {
		t.Fatalf("unexpected people: %+v", people)
	}
	if people[0].Socials == nil || people[0].Socials.Linkedin == nil || people[0].Socials.Linkedin.URL != "https://linkedin.com/in/jane" {
		t.Fatalf("expected linkedin social, got %+v", people[0].Socials)
	}
}

func TestGetPersonsByIDs_EmptyInputSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id set")
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 0)
	people, err := client.GetPersonsByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetPersonsByIDs: %v", err)
	}
	if len(people) != 0 {
		t.Fatalf("expected empty result, got %+v", people)
	}
}

func TestDo_RetriesServerErrorsThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data": {"getPersonsByIds": []}}`))
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 2)
	if _, err := client.GetPersonsByIDs(context.Background(), []int64{1}); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_ExhaustsRetriesAndFails(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 1)
	if _, err := client.GetPersonsByIDs(context.Background(), []int64{1}); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 3)
	if _, err := client.GetPersonsByIDs(context.Background(), []int64{1}); err == nil {
		t.Fatalf("expected error on 400")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestIsRetryableHTTP(t *testing.T) {
	retryable := []int{408, 429, 500, 502, 503, 599}
	for _, code := range retryable {
		if !isRetryableHTTP(code) {
			t.Fatalf("expected %d to be retryable", code)
		}
	}
	terminal := []int{200, 400, 401, 403, 404, 422}
	for _, code := range terminal {
		if isRetryableHTTP(code) {
			t.Fatalf("expected %d to be terminal", code)
		}
	}
}

func TestGetTeamConnections_FlattensUserConnections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"getCompanyById": {"userConnections": [{"user": {"email": "a@b.com", "name": "A"}}, {"user": {"email": "c@d.com", "name": "C"}}]}}}`))
	}))
	defer server.Close()

	client := newTestHarmonicClient(t, server.URL, 0)
	connections, err := client.GetTeamConnections(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTeamConnections: %v", err)
	}
	if len(connections) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(connections))
	}
	if connections[0].Email != "a@b.com" || connections[1].Name != "C" {
		t.Fatalf("unexpected connections: %+v", connections)
	}
}
