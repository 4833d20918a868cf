package funnel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientSendCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-phone", r.URL.Path)
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit")
	res, err := c.SendCode(context.Background(), "0157 1234567")
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestClientBusinessFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":"invalid code","attemptsLeft":2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit")
	res, err := c.VerifyCode(context.Background(), "0157 1234567", "000000")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "invalid code", res.Error)
	require.NotNil(t, res.AttemptsLeft)
	require.Equal(t, 2, *res.AttemptsLeft)
}

func TestClientNon2xxIsInfrastructureError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit")
	_, err := c.SendCode(context.Background(), "0157 1234567")
	require.Error(t, err)
}
