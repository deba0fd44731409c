package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/storage"
	"github.com/dragosrosca/usage-reporting/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, store Storage, engine Engine) *server {
	args := ArgsWebServer{
		ServiceKeyApi:  "test-secret",
		ListenAddress:  ":0",
		Storage:        store,
		Engine:         engine,
		GeneralHandler: func(h http.Handler) http.Handler { return h },
	}

	serv, err := NewServer(args)
	require.NoError(t, err)

	return serv
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	t.Run("nil storage should error", func(t *testing.T) {
		serv, err := NewServer(ArgsWebServer{
			Engine:         &testsCommon.EngineStub{},
			GeneralHandler: func(h http.Handler) http.Handler { return h },
		})

		assert.Nil(t, serv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage is required")
	})
	t.Run("nil engine should error", func(t *testing.T) {
		serv, err := NewServer(ArgsWebServer{
			Storage:        &testsCommon.StorageStub{},
			GeneralHandler: func(h http.Handler) http.Handler { return h },
		})

		assert.Nil(t, serv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "engine is required")
	})
	t.Run("nil general handler should error", func(t *testing.T) {
		serv, err := NewServer(ArgsWebServer{
			Storage: &testsCommon.StorageStub{},
			Engine:  &testsCommon.EngineStub{},
		})

		assert.Nil(t, serv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil http handler")
	})
}

func TestTriggerEndpoint(t *testing.T) {
	t.Parallel()

	expectedReports := []common.InstanceReport{
		{
			InstanceID:  "i-0001",
			WindowStart: 1000,
			WindowEnd:   2000,
			Metrics:     common.AggregatedMetrics{Average: 51.8, Maximum: 99.0, Minimum: 10.0},
		},
	}
	engine := &testsCommon.EngineStub{
		GenerateReportsHandler: func(_ context.Context) ([]common.InstanceReport, error) {
			return expectedReports, nil
		},
	}
	store, err := storage.NewSQLiteStorage(":memory:", 100)
	require.NoError(t, err)
	serv := setupTestServer(t, store, engine)
	defer func() {
		_ = store.Close()
	}()

	// the trigger event is opaque, any JSON body is accepted
	body := []byte(`{"source": "scheduler", "detail": {}}`)

	// Test Unauthenticated
	req, _ := http.NewRequest("POST", "/api/trigger", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Test Authenticated
	req, _ = http.NewRequest("POST", "/api/trigger", bytes.NewBuffer(body))
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reports []common.InstanceReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, expectedReports, resp.Reports)
}

func TestTriggerEndpointEngineFailure(t *testing.T) {
	t.Parallel()

	engine := &testsCommon.EngineStub{
		GenerateReportsHandler: func(_ context.Context) ([]common.InstanceReport, error) {
			return nil, errors.New("failed to enumerate instances: connection refused")
		},
	}
	store, err := storage.NewSQLiteStorage(":memory:", 100)
	require.NoError(t, err)
	serv := setupTestServer(t, store, engine)
	defer func() {
		_ = store.Close()
	}()

	req, _ := http.NewRequest("POST", "/api/trigger", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to enumerate instances")
}

func TestGetReportsEndpoints(t *testing.T) {
	t.Parallel()

	store, err := storage.NewSQLiteStorage(":memory:", 100)
	require.NoError(t, err)
	serv := setupTestServer(t, store, &testsCommon.EngineStub{})
	defer func() {
		_ = store.Close()
	}()

	// Seed DB
	err = store.SaveReport(context.Background(), common.InstanceReport{
		InstanceID:  "i-0001",
		WindowStart: 1000,
		WindowEnd:   2000,
		Metrics:     common.AggregatedMetrics{Average: 43.95, Maximum: 93.0, Minimum: 11.0},
	}, time.Now().Unix())
	require.NoError(t, err)

	t.Run("latest reports", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/reports", nil)
		req.Header.Set("X-Api-Key", "test-secret")
		w := httptest.NewRecorder()
		serv.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Reports []common.StoredReport `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Reports, 1)
		assert.Equal(t, "i-0001", resp.Reports[0].InstanceID)
		assert.Equal(t, 43.95, resp.Reports[0].Metrics.Average)
	})
	t.Run("history", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/reports/i-0001/history", nil)
		req.Header.Set("X-Api-Key", "test-secret")
		w := httptest.NewRecorder()
		serv.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			History []common.StoredReport `json:"history"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.History, 1)
		assert.Equal(t, int64(1000), resp.History[0].WindowStart)
	})
	t.Run("history of an unknown instance returns 404", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/reports/i-unknown/history", nil)
		req.Header.Set("X-Api-Key", "test-secret")
		w := httptest.NewRecorder()
		serv.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
