package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgeos-client/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, "test-token", WithTenant("tenant-1")), srv
}

func TestClient_RequestHeaders(t *testing.T) {
	var got *http.Request
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"items":[],"total":0}`))
	})
	defer srv.Close()

	_, err := client.ListApplications(context.Background(), ListApplicationsParams{PopupID: 7})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got.Header.Get("Authorization"))
	assert.Equal(t, "tenant-1", got.Header.Get("X-Tenant-ID"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestClient_ListApplicationsQuery(t *testing.T) {
	var query url.Values
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"items":[],"total":0}`))
	})
	defer srv.Close()

	_, err := client.ListApplications(context.Background(), ListApplicationsParams{
		PopupID:      7,
		Skip:         40,
		Limit:        20,
		Search:       "ada",
		StatusFilter: domain.ApplicationStatusInReview,
	})
	require.NoError(t, err)

	assert.Equal(t, "7", query.Get("popup_id"))
	assert.Equal(t, "40", query.Get("skip"))
	assert.Equal(t, "20", query.Get("limit"))
	assert.Equal(t, "ada", query.Get("search"))
	assert.Equal(t, "in review", query.Get("status_filter"))
}

func TestClient_SubmitReviewBody(t *testing.T) {
	var body map[string]string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"application_id":42,"decision":"yes"}`))
	})
	defer srv.Close()

	review, err := client.SubmitReview(context.Background(), 42, domain.DecisionYes)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"decision": "yes"}, body)
	assert.Equal(t, domain.DecisionYes, review.Decision)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "401 session expired",
			status:      http.StatusUnauthorized,
			body:        `{"detail":"Could not validate credentials"}`,
			wantMessage: "Session expired",
		},
		{
			name:        "403 verbatim",
			status:      http.StatusForbidden,
			body:        `{"detail":"Superadmin access required"}`,
			wantMessage: "Superadmin access required",
		},
		{
			name:        "404 verbatim",
			status:      http.StatusNotFound,
			body:        `{"detail":"Application not found"}`,
			wantMessage: "Application not found",
		},
		{
			name:        "422 first validation message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"loc":["body","name"],"msg":"field required"}]}`,
			wantMessage: "value is not a valid email address",
		},
		{
			name:        "400 business rule verbatim",
			status:      http.StatusBadRequest,
			body:        `{"detail":"Payment already approved"}`,
			wantMessage: "Payment already approved",
		},
		{
			name:        "empty error body falls back",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantMessage: genericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			_, err := client.GetApplication(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message())
			assert.Equal(t, tt.wantMessage, ErrorMessage(err))
		})
	}
}

func TestClient_TransportFailureFallsBack(t *testing.T) {
	client := New("http://127.0.0.1:1", "token")
	_, err := client.GetApplication(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, genericErrorMessage, ErrorMessage(err))
	assert.False(t, IsNotFound(err))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: 404}))
	assert.False(t, IsNotFound(&APIError{Status: 400}))
	assert.True(t, IsUnauthorized(&APIError{Status: 401}))
	assert.Empty(t, ErrorMessage(nil))
}
