package service

import (
	"context"
	"errors"
	"time"

	"movequote/internal/domain"
	"movequote/internal/repository"

	"go.uber.org/zap"
)

// Archiver mirrors a completed quote into durable storage. Best-effort:
// the orchestrator logs and absorbs its failures.
type Archiver interface {
	SaveCompleted(ctx context.Context, rec domain.QuoteRecord) error
}

// SubmissionResult tells the transport layer what happened, so it can manage
// the session cookie lifecycle.
type SubmissionResult struct {
	SessionID string
	Phase     domain.SubmissionPhase
	Inserted  bool
}

// SubmissionService sequences one quote submission end to end:
// resolve session, locate any existing row, merge, write, notify.
//
// Failure contract: store read/write failures abort the request; email and
// archive failures are logged and absorbed, the submission still succeeds.
type SubmissionService struct {
	repo     *repository.QuotesRepo
	mailer   Mailer
	archive  Archiver
	notifyTo string
	logger   *zap.Logger
	locks    *sessionLocks
	now      func() time.Time
}

// NewSubmissionService wires the orchestrator. archive may be nil and
// notifyTo may be empty; both simply disable the corresponding side effect.
func NewSubmissionService(repo *repository.QuotesRepo, mailer Mailer, archive Archiver, notifyTo string, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		mailer:   mailer,
		archive:  archive,
		notifyTo: notifyTo,
		logger:   logger,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
}

// Submit processes one submission. token is the session token presented by
// the caller (empty when absent).
func (s *SubmissionService) Submit(ctx context.Context, token string, phase domain.SubmissionPhase, payload domain.QuotePayload) (*SubmissionResult, error) {
	sessionID := ResolveSession(token)

	s.locks.lock(sessionID)
	defer s.locks.unlock(sessionID)

	rowIndex, err := s.repo.Locate(ctx, sessionID)
	switch {
	case err == nil:
		existing, err := s.repo.Get(ctx, rowIndex)
		if err != nil {
			return nil, err
		}
		merged := MergeQuote(&existing, payload, sessionID, s.now())
		if err := s.repo.Update(ctx, rowIndex, merged); err != nil {
			return nil, err
		}
		s.finish(ctx, merged, phase, false)
		return &SubmissionResult{SessionID: sessionID, Phase: phase, Inserted: false}, nil

	case errors.Is(err, domain.ErrRowNotFound):
		// fresh record; a direct phase-2 call with an unknown token lands
		// here too and is treated identically
		merged := MergeQuote(nil, payload, sessionID, s.now())
		if err := s.repo.Insert(ctx, merged); err != nil {
			return nil, err
		}
		s.finish(ctx, merged, phase, true)
		return &SubmissionResult{SessionID: sessionID, Phase: phase, Inserted: true}, nil

	default:
		return nil, err
	}
}

// finish runs the best-effort side effects after the row is committed.
func (s *SubmissionService) finish(ctx context.Context, rec domain.QuoteRecord, phase domain.SubmissionPhase, inserted bool) {
	s.logger.Info("Quote submission stored",
		zap.String("session_id", rec.SessionID),
		zap.String("phase", phase.String()),
		zap.Bool("inserted", inserted),
	)

	if s.notifyTo != "" {
		subject := "New moving quote request"
		if phase == domain.PhaseFinal {
			subject = "Moving quote request completed"
		}
		if err := s.mailer.Send(ctx, s.notifyTo, subject, NotificationBody(rec, phase)); err != nil {
			s.logger.Error("Notification email failed",
				zap.String("session_id", rec.SessionID),
				zap.Error(err),
			)
		}
	}

	if phase == domain.PhaseFinal {
		if rec.Email != "" {
			if err := s.mailer.Send(ctx, rec.Email, "We received your moving quote request", ConfirmationBody(rec)); err != nil {
				s.logger.Error("Confirmation email failed",
					zap.String("session_id", rec.SessionID),
					zap.Error(err),
				)
			}
		}
		if s.archive != nil {
			if err := s.archive.SaveCompleted(ctx, rec); err != nil {
				s.logger.Error("Quote archive failed",
					zap.String("session_id", rec.SessionID),
					zap.Error(err),
				)
			}
		}
	}
}

// ListQuotes exposes the stored records for the export endpoint.
func (s *SubmissionService) ListQuotes(ctx context.Context) ([]domain.QuoteRecord, error) {
	return s.repo.List(ctx)
}
