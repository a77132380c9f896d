package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/downstream"
	"github.com/smash-proyect/bff/internal/logger"
)

func TestForward_Authenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ReportsPath, r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"report_id":1}`))
	}))
	defer srv.Close()

	log := logger.New("error", false)
	f := New(downstream.New(nil, log), "reportes", srv.URL, ReportsPath, true, time.Second, log)

	resp, err := f.Forward(context.Background(), []byte(`{"title":"x"}`), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.JSONEq(t, `{"report_id":1}`, string(resp.Body))

	_, err = f.Forward(context.Background(), []byte(`{}`), "", "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestForward_UnauthenticatedDropsToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"event_id":"e-1"}`))
	}))
	defer srv.Close()

	log := logger.New("error", false)
	f := New(downstream.New(nil, log), "consulta", srv.URL+"/", EventIDPath, false, time.Second, log)

	resp, err := f.Forward(context.Background(), []byte(`{"code":"A"}`), "abc123", "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "/get-event-id/", gotPath)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestForward_MalformedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	log := logger.New("error", false)
	f := New(downstream.New(nil, log), "reportes", srv.URL, ReportsPath, true, time.Second, log)

	_, err := f.Forward(context.Background(), []byte(`{}`), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestForward_ErrorStatusRelayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"missing title"}`))
	}))
	defer srv.Close()

	log := logger.New("error", false)
	f := New(downstream.New(nil, log), "reportes", srv.URL, ReportsPath, true, time.Second, log)

	resp, err := f.Forward(context.Background(), []byte(`{}`), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.JSONEq(t, `{"detail":"missing title"}`, string(resp.Body))
}
