package session

import (
	"context"
	"errors"
	"fmt"

	"kinetica/internal/access"
	"kinetica/internal/apperr"
	"kinetica/internal/auth"
	"kinetica/internal/datetime"
	"kinetica/internal/db"
	"kinetica/internal/ledger"
	"kinetica/internal/logger"
	"kinetica/internal/member"
	"kinetica/internal/metrics"
	"kinetica/internal/user"

	"github.com/jmoiron/sqlx"
)

var (
	errNotFound        = apperr.NotFound("Session not found")
	errTrainerNotFound = apperr.NotFound("Trainer not found")
	errPackageMismatch = apperr.BadRequest("Member package not found for this member")
)

type MemberDirectory interface {
	Accessible(ctx context.Context, id auth.Identity, memberID int) (*member.Member, error)
	Active(ctx context.Context, id auth.Identity, memberID int) (*member.Member, error)
}

type TrainerLookup interface {
	FindInGym(ctx context.Context, gymID, id int) (*user.User, error)
}

// Ledger is the entitlement side of a status change.
type Ledger interface {
	BelongsTo(ctx context.Context, mpID, memberID int) (bool, error)
	AdjustRemaining(ctx context.Context, q sqlx.ExtContext, mpID, delta int) (ledger.Adjustment, error)
}

type Service interface {
	List(ctx context.Context, id auth.Identity, day *datetime.Date) ([]SessionWithDetails, error)
	ListByMember(ctx context.Context, id auth.Identity, memberID int) ([]SessionWithDetails, error)
	Get(ctx context.Context, id auth.Identity, sessionID int) (*SessionWithDetails, error)
	Create(ctx context.Context, id auth.Identity, req CreateSessionRequest) (*SessionWithDetails, error)
	Update(ctx context.Context, id auth.Identity, sessionID int, req UpdateSessionRequest) (*SessionWithDetails, error)
	Delete(ctx context.Context, id auth.Identity, sessionID int) error
}

type service struct {
	repo     Repository
	members  MemberDirectory
	trainers TrainerLookup
	ledger   Ledger
	tx       db.Transactor
}

func NewService(repo Repository, members MemberDirectory, trainers TrainerLookup, ledger Ledger, tx db.Transactor) Service {
	return &service{
		repo:     repo,
		members:  members,
		trainers: trainers,
		ledger:   ledger,
		tx:       tx,
	}
}

func (s *service) List(ctx context.Context, id auth.Identity, day *datetime.Date) ([]SessionWithDetails, error) {
	return s.repo.List(ctx, id, day)
}

func (s *service) ListByMember(ctx context.Context, id auth.Identity, memberID int) ([]SessionWithDetails, error) {
	if _, err := s.members.Accessible(ctx, id, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) Get(ctx context.Context, id auth.Identity, sessionID int) (*SessionWithDetails, error) {
	sess, err := s.load(ctx, id, sessionID)
	if err != nil {
		return nil, err
	}

	if err := access.CanViewSession(id, sess.TrainerID); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *service) Create(ctx context.Context, id auth.Identity, req CreateSessionRequest) (*SessionWithDetails, error) {
	if _, err := s.members.Active(ctx, id, req.MemberID); err != nil {
		return nil, err
	}

	_, err := s.trainers.FindInGym(ctx, id.GymID, req.TrainerID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, errTrainerNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.MemberPackageID != nil {
		ok, err := s.ledger.BelongsTo(ctx, *req.MemberPackageID, req.MemberID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errPackageMismatch
		}
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}

	created, err := s.repo.Create(ctx, &Session{
		MemberID:        req.MemberID,
		TrainerID:       req.TrainerID,
		MemberPackageID: req.MemberPackageID,
		ScheduledAt:     datetime.Naive(req.ScheduledAt.Time),
		DurationMinutes: duration,
		Status:          StatusScheduled,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return s.load(ctx, id, created.ID)
}

// Update applies req and, when the status crosses into or out of completed,
// moves the linked member package counter in the same transaction.
func (s *service) Update(ctx context.Context, id auth.Identity, sessionID int, req UpdateSessionRequest) (*SessionWithDetails, error) {
	var prev, next Status

	err := s.tx.WithTx(ctx, func(tx sqlx.ExtContext) error {
		sess, err := s.repo.GetForUpdate(ctx, tx, id.GymID, sessionID)
		if err != nil {
			return err
		}
		if err := access.CanMutateSession(id, sess.TrainerID); err != nil {
			return err
		}

		prev = sess.Status
		req.apply(sess)
		next = sess.Status

		if err := s.repo.Update(ctx, tx, sess); err != nil {
			return err
		}

		return s.adjust(ctx, tx, sess, LedgerDelta(prev, next))
	})
	if errors.Is(err, ErrSessionNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	if prev != next {
		metrics.RecordSessionTransition(string(prev), string(next))
	}

	return s.load(ctx, id, sessionID)
}

// Delete removes the session. Deleting a completed session returns its
// debit to the linked member package.
func (s *service) Delete(ctx context.Context, id auth.Identity, sessionID int) error {
	err := s.tx.WithTx(ctx, func(tx sqlx.ExtContext) error {
		sess, err := s.repo.GetForUpdate(ctx, tx, id.GymID, sessionID)
		if err != nil {
			return err
		}
		if err := access.CanMutateSession(id, sess.TrainerID); err != nil {
			return err
		}

		if err := s.adjust(ctx, tx, sess, DeleteDelta(sess.Status)); err != nil {
			return err
		}

		return s.repo.Delete(ctx, tx, sess.ID)
	})
	if errors.Is(err, ErrSessionNotFound) {
		return errNotFound
	}
	return err
}

func (s *service) adjust(ctx context.Context, tx sqlx.ExtContext, sess *Session, delta int) error {
	if delta == 0 || sess.MemberPackageID == nil {
		return nil
	}

	adj, err := s.ledger.AdjustRemaining(ctx, tx, *sess.MemberPackageID, delta)
	if err != nil {
		return err
	}

	logger.Info("sessions_remaining adjusted",
		"session_id", sess.ID,
		"member_package_id", adj.MemberPackageID,
		"delta", delta,
		"sessions_remaining", adj.After,
	)
	return nil
}

func (s *service) load(ctx context.Context, id auth.Identity, sessionID int) (*SessionWithDetails, error) {
	sess, err := s.repo.GetByID(ctx, id.GymID, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, errNotFound
	}
	return sess, err
}
