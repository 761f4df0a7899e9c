package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSheetClient_GetRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Quotes!A:C", r.URL.Path)
		assert.Equal(t, "Bearer key-abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{
			Range: "Quotes!A:C",
			Values: [][]string{
				{"Session ID", "Created At", "Name"},
				{"session-1", "2024-04-01T10:00:00Z", "Jane"},
			},
		})
	}))
	defer srv.Close()

	c := NewSheetClient(srv.URL, "key-abc", "sheet-123", "Quotes", 3, zap.NewNop())

	rows, err := c.GetRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "session-1", rows[1][0])
}

func TestSheetClient_GetRow_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Quotes!A7:C7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(valuesResponse{Range: "Quotes!A7:C7"})
	}))
	defer srv.Close()

	c := NewSheetClient(srv.URL, "key-abc", "sheet-123", "Quotes", 3, zap.NewNop())

	row, err := c.GetRow(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestSheetClient_InsertRowAtTop_ShiftsThenWrites(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/v4/spreadsheets/sheet-123:batchUpdate":
			var body batchUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Requests, 1)
			ins := body.Requests[0]["insertDimension"]
			assert.Equal(t, "ROWS", ins.Range.Dimension)
			assert.Equal(t, 1, ins.Range.StartIndex)
			assert.Equal(t, 2, ins.Range.EndIndex)
		case "/v4/spreadsheets/sheet-123/values/Quotes!A2:C2":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
			var body valuesUpdate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, [][]string{{"session-1", "", "Jane"}}, body.Values)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewSheetClient(srv.URL, "key-abc", "sheet-123", "Quotes", 3, zap.NewNop())

	err := c.InsertRowAtTop(context.Background(), []string{"session-1", "", "Jane"})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "batchUpdate")
}

func TestSheetClient_UpdateRow_ErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"permission denied"}`))
	}))
	defer srv.Close()

	c := NewSheetClient(srv.URL, "bad-key", "sheet-123", "Quotes", 3, zap.NewNop())

	err := c.UpdateRow(context.Background(), 2, []string{"session-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "T", columnName(20))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
}
