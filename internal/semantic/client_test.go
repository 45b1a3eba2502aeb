package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IndexDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", logrus.New())

	req := IndexRequest{
		Documents: []Document{{
			ExternalID: "feedback/42",
			Content:    "wifi keeps dropping in the library",
		}},
		Source: "campusvoice/feedback",
	}

	err := client.IndexDocuments(req)
	require.NoError(t, err)
}

func TestClient_Search(t *testing.T) {
	expectedResponse := SearchResponse{
		Results: []SearchResult{{
			ExternalID: "feedback/7",
			Text:       "library wifi disconnects frequently",
			Score:      0.91,
		}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", logrus.New())

	response, err := client.Search(SearchRequest{
		Query:    "library wifi keeps disconnecting",
		MinScore: 0.3,
		Limit:    3,
	})
	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	assert.Equal(t, expectedResponse.Results[0].ExternalID, response.Results[0].ExternalID)
	assert.Equal(t, expectedResponse.Results[0].Score, response.Results[0].Score)
}

func TestClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid query"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", logrus.New())

	_, err := client.Search(SearchRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_SearchWithRetry_TransientFailure(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", logrus.New())

	_, err := client.SearchWithRetry(context.Background(), SearchRequest{Query: "wifi"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_SearchWithRetry_BadRequestNotRetried(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", logrus.New())

	_, err := client.SearchWithRetry(context.Background(), SearchRequest{})
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
