package repository

import (
	"strings"
	"time"

	"movequote/internal/domain"
)

// columnHeaders is the fixed, ordered column schema of the quote sheet.
// Every encode/decode call site shares this order; changing it is a
// schema migration for existing sheets.
var columnHeaders = []string{
	"Session ID",
	"Created At",
	"Name",
	"Phone",
	"Email",
	"Move Scope",
	"Home Type Details",
	"Vehicle Selection",
	"Moving Date",
	"Requirements",
	"Current Address",
	"New Address",
	"Current City",
	"New City",
	"Current Country",
	"From City",
	"New Country",
	"To City",
	"Estimated Cost",
	"Distance",
}

const sessionColumn = 0

const createdAtLayout = time.RFC3339

// ColumnHeaders returns a copy of the sheet header row.
func ColumnHeaders() []string {
	return append([]string(nil), columnHeaders...)
}

// NumColumns is the fixed row width of the quote sheet.
func NumColumns() int { return len(columnHeaders) }

// EncodeRow converts a record into one sheet row. The result always has
// exactly NumColumns cells; absent fields become empty strings. The combined
// phone cell is synthesized from the split subfields when the record does
// not already carry a combined value.
func EncodeRow(r domain.QuoteRecord) []string {
	phone := r.Phone
	if phone == "" {
		phone = strings.TrimSpace(r.PhoneCountryCode + " " + r.PhoneNumber)
	}

	createdAt := ""
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt.UTC().Format(createdAtLayout)
	}

	return []string{
		r.SessionID,
		createdAt,
		r.Name,
		phone,
		r.Email,
		string(r.MoveScope),
		r.HomeTypeDetails,
		r.VehicleSelection,
		r.MovingDate,
		r.Requirements,
		r.CurrentAddress,
		r.NewAddress,
		r.CurrentCity,
		r.NewCity,
		r.CurrentCountry,
		r.FromCity,
		r.NewCountry,
		r.ToCity,
		r.EstimatedCost,
		r.Distance,
	}
}

// DecodeRow converts one sheet row back into a record. Rows shorter than the
// schema are tolerated: missing trailing cells decode as empty strings. The
// split phone subfields are never reconstructed from the combined cell.
func DecodeRow(row []string) domain.QuoteRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var createdAt time.Time
	if v := cell(1); v != "" {
		if t, err := time.Parse(createdAtLayout, v); err == nil {
			createdAt = t
		}
	}

	return domain.QuoteRecord{
		SessionID:        cell(0),
		CreatedAt:        createdAt,
		Name:             cell(2),
		Phone:            cell(3),
		Email:            cell(4),
		MoveScope:        domain.MoveScope(cell(5)),
		HomeTypeDetails:  cell(6),
		VehicleSelection: cell(7),
		MovingDate:       cell(8),
		Requirements:     cell(9),
		CurrentAddress:   cell(10),
		NewAddress:       cell(11),
		CurrentCity:      cell(12),
		NewCity:          cell(13),
		CurrentCountry:   cell(14),
		FromCity:         cell(15),
		NewCountry:       cell(16),
		ToCity:           cell(17),
		EstimatedCost:    cell(18),
		Distance:         cell(19),
	}
}
