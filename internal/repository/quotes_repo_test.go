package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"movequote/internal/domain"
	"movequote/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRows struct {
	rows    [][]string
	err     error
	getRows int
	getRow  int
}

func (f *fakeRows) GetRows(ctx context.Context) ([][]string, error) {
	f.getRows++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeRows) GetRow(ctx context.Context, rowIndex int) ([]string, error) {
	f.getRow++
	if f.err != nil {
		return nil, f.err
	}
	if rowIndex < 1 || rowIndex > len(f.rows) {
		return nil, nil
	}
	return f.rows[rowIndex-1], nil
}

func (f *fakeRows) InsertRowAtTop(ctx context.Context, values []string) error {
	if f.err != nil {
		return f.err
	}
	rest := append([][]string{values}, f.rows[1:]...)
	f.rows = append([][]string{f.rows[0]}, rest...)
	return nil
}

func (f *fakeRows) UpdateRow(ctx context.Context, rowIndex int, values []string) error {
	if f.err != nil {
		return f.err
	}
	f.rows[rowIndex-1] = values
	return nil
}

type fakeKV struct {
	data map[string]string
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func sheetWith(sessions ...string) *fakeRows {
	rows := [][]string{ColumnHeaders()}
	for _, s := range sessions {
		rows = append(rows, EncodeRow(domain.QuoteRecord{SessionID: s}))
	}
	return &fakeRows{rows: rows}
}

func TestLocate_FindsFirstMatchBelowHeader(t *testing.T) {
	rows := sheetWith("session-a", "session-b", "session-b")
	repo := NewQuotesRepo(rows, nil, zap.NewNop())

	pos, err := repo.Locate(context.Background(), "session-b")
	require.NoError(t, err)
	assert.Equal(t, 3, pos, "first match wins")
}

func TestLocate_NotFound(t *testing.T) {
	repo := NewQuotesRepo(sheetWith("session-a"), nil, zap.NewNop())

	_, err := repo.Locate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestLocate_StoreFailureSurfaces(t *testing.T) {
	rows := &fakeRows{err: errors.New("network down")}
	repo := NewQuotesRepo(rows, nil, zap.NewNop())

	_, err := repo.Locate(context.Background(), "session-a")
	var se *domain.StoreError
	require.ErrorAs(t, err, &se, "a read fault is not a miss")
	assert.Equal(t, "read", se.Op)
}

func TestLocate_UsesVerifiedHint(t *testing.T) {
	rows := sheetWith("session-a", "session-b")
	kv := &fakeKV{data: map[string]string{positionHintPrefix + "session-b": "3"}}
	repo := NewQuotesRepo(rows, kv, zap.NewNop())

	pos, err := repo.Locate(context.Background(), "session-b")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
	assert.Zero(t, rows.getRows, "a verified hint must skip the full scan")
	assert.Equal(t, 1, rows.getRow)
}

func TestLocate_StaleHintFallsBackToScan(t *testing.T) {
	// rows shifted after an insert; the hint now points at a different session
	rows := sheetWith("session-new", "session-b")
	kv := &fakeKV{data: map[string]string{positionHintPrefix + "session-b": "2"}}
	repo := NewQuotesRepo(rows, kv, zap.NewNop())

	pos, err := repo.Locate(context.Background(), "session-b")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
	assert.Equal(t, 1, rows.getRows, "stale hint must fall back to the scan")
	assert.Equal(t, "3", kv.data[positionHintPrefix+"session-b"], "hint refreshed after scan")
}

func TestInsert_WritesTopRowAndHint(t *testing.T) {
	rows := sheetWith("session-old")
	kv := &fakeKV{data: map[string]string{}}
	repo := NewQuotesRepo(rows, kv, zap.NewNop())

	err := repo.Insert(context.Background(), domain.QuoteRecord{SessionID: "session-new", Name: "Jane"})
	require.NoError(t, err)

	require.Len(t, rows.rows, 3)
	assert.Equal(t, "session-new", rows.rows[1][0], "insert lands directly under the header")
	assert.Equal(t, "session-old", rows.rows[2][0])
	assert.Equal(t, "2", kv.data[positionHintPrefix+"session-new"])
}

func TestUpdate_OverwritesRowInPlace(t *testing.T) {
	rows := sheetWith("session-a", "session-b")
	repo := NewQuotesRepo(rows, nil, zap.NewNop())

	err := repo.Update(context.Background(), 3, domain.QuoteRecord{SessionID: "session-b", Name: "Updated"})
	require.NoError(t, err)

	rec := DecodeRow(rows.rows[2])
	assert.Equal(t, "Updated", rec.Name)
	assert.Equal(t, "session-b", rec.SessionID)
}

func TestList_DecodesDataRowsOnly(t *testing.T) {
	rows := sheetWith("session-a", "session-b")
	repo := NewQuotesRepo(rows, nil, zap.NewNop())

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "session-a", records[0].SessionID)
	assert.Equal(t, "session-b", records[1].SessionID)
}
