package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leveneer/congress-member-data/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewClient(ClientConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		PageSize:  250,
		RateLimit: 1000, // no throttling in tests
	}, log)
}

func pageMembers(start, count int) []map[string]any {
	members := make([]map[string]any, 0, count)
	for i := start; i < start+count; i++ {
		members = append(members, map[string]any{
			"bioguideId":    fmt.Sprintf("M%03d", i),
			"name":          fmt.Sprintf("Member %d", i),
			"state":         "New York",
			"currentMember": true,
			"terms":         map[string]any{"item": []map[string]any{{"chamber": "House", "congress": "118"}}},
		})
	}
	return members
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchMembersPaginates(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		offset := r.URL.Query().Get("offset")
		switch offset {
		case "0":
			writeJSON(t, w, map[string]any{
				"members":    pageMembers(0, 250),
				"pagination": map[string]any{"count": 500, "next": "exists"},
			})
		case "250":
			// second page carries no continuation marker
			writeJSON(t, w, map[string]any{
				"members":    pageMembers(250, 250),
				"pagination": map[string]any{"count": 500},
			})
		default:
			t.Errorf("unexpected offset %q", offset)
		}
	})

	members, stats, err := client.FetchMembers(context.Background(), 118, FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, members, 500)
	assert.Equal(t, 500, stats.Total)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "exactly two upstream calls")
}

func TestFetchMembersStopsOnEmptyPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "0" {
			writeJSON(t, w, map[string]any{
				"members":    pageMembers(0, 1),
				"pagination": map[string]any{"count": 1, "next": "exists"},
			})
			return
		}
		writeJSON(t, w, map[string]any{
			"members":    []any{},
			"pagination": map[string]any{"count": 1, "next": nil},
		})
	})

	members, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestFetchMembersMalformedPaginationMarker(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// continuation marker is a nested object instead of a URL
		writeJSON(t, w, map[string]any{
			"members":    pageMembers(0, 1),
			"pagination": map[string]any{"count": 1, "next": map[string]any{"offset": 250}},
		})
	})

	members, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "malformed marker must stop the loop")
}

func TestFetchMembersInvalidStateBeforeAnyCall(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{State: "ZZ"})
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
	assert.Contains(t, err.Error(), "invalid state code: ZZ")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no upstream call before validation")
}

func TestFetchMembersFilters(t *testing.T) {
	fixture := map[string]any{
		"members": []map[string]any{
			{
				"bioguideId":    "S000148",
				"name":          "Schumer, Charles E.",
				"state":         "New York",
				"party":         "D",
				"currentMember": true,
				"terms": map[string]any{"item": []map[string]any{
					{"chamber": "Senate", "congress": "118", "startYear": "2023", "endYear": "2025"},
				}},
			},
			{
				"bioguideId":    "H000100",
				"name":          "Doe, Jane",
				"state":         "New York",
				"party":         "R",
				"currentMember": true,
				"terms": map[string]any{"item": []map[string]any{
					{"chamber": "House of Representatives", "congress": "118"},
				}},
			},
			{
				"bioguideId":    "C000200",
				"name":          "Roe, Richard",
				"state":         "California",
				"party":         "D",
				"currentMember": true,
				"terms": map[string]any{"item": []map[string]any{
					{"chamber": "House of Representatives", "congress": "118"},
				}},
			},
		},
		"pagination": map[string]any{"count": 3, "next": nil},
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixture)
	}

	t.Run("state filter", func(t *testing.T) {
		client := newTestClient(t, handler)
		members, stats, err := client.FetchMembers(context.Background(), 118, FetchOptions{State: "NY"})
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "New York", members[0].State)
		assert.Equal(t, 2, stats.Total)
	})

	t.Run("chamber filter", func(t *testing.T) {
		client := newTestClient(t, handler)
		members, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{Chamber: ChamberSenate})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "S000148", members[0].BioguideID)
		assert.Equal(t, "Senate", CurrentChamber(members[0]))
	})

	t.Run("combined filters", func(t *testing.T) {
		client := newTestClient(t, handler)
		members, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{State: "NY", Chamber: ChamberHouse})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "H000100", members[0].BioguideID)
	})
}

func TestFetchMembersUpstreamError(t *testing.T) {
	statuses := []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	}

	for _, status := range statuses {
		t.Run(fmt.Sprintf("%d", status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, http.StatusText(status), status)
			})

			_, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{})
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeExternal, errors.GetType(err))
			assert.Contains(t, err.Error(), fmt.Sprintf("%d", status))
		})
	}
}

func TestFetchMembersConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k", RateLimit: 1000}, log)

	_, _, err := client.FetchMembers(context.Background(), 118, FetchOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNetwork, errors.GetType(err))
}

func TestFetchMembersSendsQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "250", q.Get("limit"))
		assert.Equal(t, "Senate", q.Get("chamber"))
		assert.Equal(t, "/member/congress/110", r.URL.Path)
		writeJSON(t, w, map[string]any{"members": []any{}, "pagination": map[string]any{"count": 0}})
	})

	_, _, err := client.FetchMembers(context.Background(), 110, FetchOptions{Chamber: ChamberSenate})
	require.NoError(t, err)
}
