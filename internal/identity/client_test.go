package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consult-chat/internal/apperrors"
)

func TestVerifySuccess(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid":true,"user_id":"` + userID.String() + `","role":"requester","display_name":"Alice","expires_in":3600}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	id, err := client.Verify(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.Equal(t, RoleRequester, id.Role)
	assert.Equal(t, "Alice", id.DisplayName)
	assert.Equal(t, int64(3600), id.ExpiresIn)
}

func TestVerifyMissingToken(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second)

	_, err := client.Verify(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestVerifyInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"valid":false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Verify(context.Background(), "expired")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestVerifyUpstreamRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Verify(context.Background(), "rejected")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestVerifyTimeoutDenies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Verify(context.Background(), "slow")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestResolveDisplayNameSuccess(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/provider/"+userID.String(), r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"name":"Dr. Bob"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	name, err := client.ResolveDisplayName(context.Background(), userID, "token-123")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Bob", name)
}

func TestResolveDisplayNameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ResolveDisplayName(context.Background(), uuid.New(), "token-123")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestResolveDisplayNameEmptyName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ResolveDisplayName(context.Background(), uuid.New(), "token-123")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
