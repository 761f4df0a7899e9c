package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"movequote/internal/domain"
	"movequote/internal/store"

	"go.uber.org/zap"
)

const (
	positionHintPrefix = "quote:session-row:"
	positionHintTTL    = 24 * time.Hour
)

// QuotesRepo persists quote records into the row store. It owns the
// schema mapping (rowcodec) and the session-id row locator.
//
// hints is an optional position cache: a hit skips the full-sheet scan but
// is always verified against the store before use, because every insert at
// the top shifts the rows below it.
type QuotesRepo struct {
	rows   store.RowStore
	hints  store.KV
	logger *zap.Logger
}

func NewQuotesRepo(rows store.RowStore, hints store.KV, logger *zap.Logger) *QuotesRepo {
	return &QuotesRepo{rows: rows, hints: hints, logger: logger}
}

// Locate returns the 1-based row index of the first row whose session cell
// equals sessionID, or domain.ErrRowNotFound. Store read failures surface
// as *domain.StoreError.
func (r *QuotesRepo) Locate(ctx context.Context, sessionID string) (int, error) {
	if pos, ok := r.hintedPosition(ctx, sessionID); ok {
		return pos, nil
	}

	rows, err := r.rows.GetRows(ctx)
	if err != nil {
		return 0, &domain.StoreError{Op: "read", Err: err}
	}

	// row 1 is the header
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > sessionColumn && rows[i][sessionColumn] == sessionID {
			pos := i + 1
			r.setHint(ctx, sessionID, pos)
			return pos, nil
		}
	}
	return 0, domain.ErrRowNotFound
}

// Get fetches and decodes the record at rowIndex.
func (r *QuotesRepo) Get(ctx context.Context, rowIndex int) (domain.QuoteRecord, error) {
	row, err := r.rows.GetRow(ctx, rowIndex)
	if err != nil {
		return domain.QuoteRecord{}, &domain.StoreError{Op: "read", Err: err}
	}
	return DecodeRow(row), nil
}

// Insert writes rec as the new top row (row 2, directly under the header).
func (r *QuotesRepo) Insert(ctx context.Context, rec domain.QuoteRecord) error {
	if err := r.rows.InsertRowAtTop(ctx, EncodeRow(rec)); err != nil {
		return &domain.StoreError{Op: "insert", Err: err}
	}
	r.setHint(ctx, rec.SessionID, 2)
	return nil
}

// Update overwrites the row at rowIndex with rec.
func (r *QuotesRepo) Update(ctx context.Context, rowIndex int, rec domain.QuoteRecord) error {
	if err := r.rows.UpdateRow(ctx, rowIndex, EncodeRow(rec)); err != nil {
		return &domain.StoreError{Op: "update", Err: err}
	}
	r.setHint(ctx, rec.SessionID, rowIndex)
	return nil
}

// List returns every stored record, newest first (sheet order).
func (r *QuotesRepo) List(ctx context.Context) ([]domain.QuoteRecord, error) {
	rows, err := r.rows.GetRows(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "read", Err: err}
	}
	records := make([]domain.QuoteRecord, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		records = append(records, DecodeRow(rows[i]))
	}
	return records, nil
}

// hintedPosition resolves the cached row position for sessionID and verifies
// it against the store. A stale or unverifiable hint is dropped.
func (r *QuotesRepo) hintedPosition(ctx context.Context, sessionID string) (int, bool) {
	if r.hints == nil {
		return 0, false
	}
	v, err := r.hints.Get(ctx, positionHintPrefix+sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			r.logger.Warn("Position hint lookup failed", zap.Error(err))
		}
		return 0, false
	}
	pos, err := strconv.Atoi(v)
	if err != nil || pos < 2 {
		_ = r.hints.Del(ctx, positionHintPrefix+sessionID)
		return 0, false
	}

	row, err := r.rows.GetRow(ctx, pos)
	if err != nil || len(row) <= sessionColumn || row[sessionColumn] != sessionID {
		_ = r.hints.Del(ctx, positionHintPrefix+sessionID)
		return 0, false
	}
	return pos, true
}

func (r *QuotesRepo) setHint(ctx context.Context, sessionID string, pos int) {
	if r.hints == nil || sessionID == "" {
		return
	}
	if err := r.hints.Set(ctx, positionHintPrefix+sessionID, strconv.Itoa(pos), positionHintTTL); err != nil {
		r.logger.Warn("Failed to cache row position hint",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}
