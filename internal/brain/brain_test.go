package brain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizons-app/horizons/internal/remote"
)

func TestSendReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhook", r.URL.Path)
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]string{"user_id": "u1", "message": "hola"}, req)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reply":"hola!"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Send(context.Background(), "u1", "hola")
	require.NoError(t, err)
	assert.Equal(t, "hola!", reply)
}

func TestSendAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"reply":"creado"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Send(context.Background(), "u1", "hola")
	require.NoError(t, err)
	assert.Equal(t, "creado", reply)
}

func TestSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Send(context.Background(), "u1", "hola")
	var se *remote.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.StatusCode)
	assert.Contains(t, err.Error(), "boom")
}

func TestSendDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Send(context.Background(), "u1", "hola")
	var de *remote.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "<html>", string(de.Raw))
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url)
	_, err := client.Send(context.Background(), "u1", "hola")
	var ne *remote.NetworkError
	require.True(t, errors.As(err, &ne))

	assert.Error(t, client.Ping(context.Background()))
}

func TestPingAcceptsAnyReply(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	assert.NoError(t, NewClient(srv.URL).Ping(context.Background()))
}
