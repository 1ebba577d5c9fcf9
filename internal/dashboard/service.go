package dashboard

import (
	"context"
	"fmt"
	"time"

	"kinetica/internal/auth"
	"kinetica/internal/datetime"
)

type Service interface {
	Stats(ctx context.Context, id auth.Identity) (*Stats, error)
	TodaySessions(ctx context.Context, id auth.Identity) ([]TodaySession, error)
	ExpiringPackages(ctx context.Context, id auth.Identity) ([]ExpiringPackage, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService reads "today" as the calendar day in loc.
func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{repo: repo, loc: loc, now: time.Now}
}

func (s *service) today() datetime.Date {
	return datetime.DateOf(s.now().In(s.loc))
}

func (s *service) Stats(ctx context.Context, id auth.Identity) (*Stats, error) {
	today := s.today()

	var (
		stats Stats
		err   error
	)

	if stats.TodaySessions, err = s.repo.CountSessionsOn(ctx, id, today); err != nil {
		return nil, fmt.Errorf("count today's sessions: %w", err)
	}
	if stats.ExpiringPackagesThisWeek, err = s.repo.CountExpiring(ctx, id, today, today.AddDays(ExpiringWindowDays)); err != nil {
		return nil, fmt.Errorf("count expiring packages: %w", err)
	}
	if stats.UnpaidMembers, err = s.repo.CountUnpaidMembers(ctx, id); err != nil {
		return nil, fmt.Errorf("count unpaid members: %w", err)
	}
	if stats.ActiveMembers, err = s.repo.CountActiveMembers(ctx, id); err != nil {
		return nil, fmt.Errorf("count active members: %w", err)
	}

	return &stats, nil
}

func (s *service) TodaySessions(ctx context.Context, id auth.Identity) ([]TodaySession, error) {
	return s.repo.SessionsOn(ctx, id, s.today())
}

func (s *service) ExpiringPackages(ctx context.Context, id auth.Identity) ([]ExpiringPackage, error) {
	today := s.today()
	return s.repo.Expiring(ctx, id, today, today.AddDays(ExpiringWindowDays))
}
