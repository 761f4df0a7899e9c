package service

import (
	"time"

	"movequote/internal/domain"
)

// MergeQuote reconciles a previously stored record with a newly submitted
// partial payload.
//
// When existing is nil the payload is overlaid onto an empty record with the
// given session id and createdAt. Otherwise each payload field overwrites the
// stored value only when non-empty; SessionID and CreatedAt always carry over
// from the existing record.
//
// A payload that changes MoveScope wins the scope, but geography fields of
// the old scope are retained as-is rather than cleared. Clearing them would
// break the "stored values survive empty payload fields" contract that
// resubmissions rely on, so downstream readers must tolerate stale
// cross-scope fields.
func MergeQuote(existing *domain.QuoteRecord, p domain.QuotePayload, sessionID string, createdAt time.Time) domain.QuoteRecord {
	var rec domain.QuoteRecord
	if existing != nil {
		rec = *existing
	} else {
		rec.SessionID = sessionID
		rec.CreatedAt = createdAt
	}

	setIf(&rec.Name, p.Name)
	setIf(&rec.Email, p.Email)
	setIf(&rec.HomeTypeDetails, p.HomeTypeDetails)
	setIf(&rec.VehicleSelection, p.VehicleSelection)
	setIf(&rec.MovingDate, p.MovingDate)
	setIf(&rec.Requirements, p.Requirements)
	setIf(&rec.CurrentAddress, p.CurrentAddress)
	setIf(&rec.NewAddress, p.NewAddress)
	setIf(&rec.CurrentCity, p.CurrentCity)
	setIf(&rec.NewCity, p.NewCity)
	setIf(&rec.CurrentCountry, p.CurrentCountry)
	setIf(&rec.FromCity, p.FromCity)
	setIf(&rec.NewCountry, p.NewCountry)
	setIf(&rec.ToCity, p.ToCity)
	setIf(&rec.EstimatedCost, p.EstimatedCost)
	setIf(&rec.Distance, p.Distance)

	if p.MoveScope != "" {
		rec.MoveScope = domain.MoveScope(p.MoveScope)
	}

	// an updated phone subfield invalidates the stored combined value,
	// which the row codec re-synthesizes on the next encode
	phoneChanged := false
	if p.PhoneCountryCode != "" {
		rec.PhoneCountryCode = p.PhoneCountryCode
		phoneChanged = true
	}
	if p.PhoneNumber != "" {
		rec.PhoneNumber = p.PhoneNumber
		phoneChanged = true
	}
	if phoneChanged {
		rec.Phone = ""
	}

	return rec
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
