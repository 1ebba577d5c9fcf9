package dashboard

import (
	"context"

	"kinetica/internal/access"
	"kinetica/internal/auth"
	"kinetica/internal/datetime"
	"kinetica/internal/db"

	"github.com/jmoiron/sqlx"
)

const (
	sessionsFrom = ` FROM sessions s JOIN members m ON m.id = s.member_id`
	packagesFrom = ` FROM member_packages mp JOIN members m ON m.id = mp.member_id`

	onDayNotCancelled = "s.scheduled_at BETWEEN ? AND ? AND s.status <> 'cancelled'"
	expiringBetween   = "m.is_active = TRUE AND mp.expiry_date BETWEEN ? AND ? AND mp.sessions_remaining > 0"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountSessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) (int, error) {
	p := access.Scope(access.Sessions, id).And(onDayNotCancelled, datetime.StartOfDay(day), datetime.EndOfDay(day))
	return r.count(ctx, `SELECT COUNT(s.id)`+sessionsFrom, p)
}

func (r *repository) CountExpiring(ctx context.Context, id auth.Identity, from, to datetime.Date) (int, error) {
	p := access.Scope(access.MemberPackages, id).And(expiringBetween, from, to)
	return r.count(ctx, `SELECT COUNT(mp.id)`+packagesFrom, p)
}

func (r *repository) CountUnpaidMembers(ctx context.Context, id auth.Identity) (int, error) {
	p := access.Scope(access.MemberPackages, id).And("m.is_active = TRUE AND mp.payment_status IN ('pending', 'overdue')")
	return r.count(ctx, `SELECT COUNT(DISTINCT mp.member_id)`+packagesFrom, p)
}

func (r *repository) CountActiveMembers(ctx context.Context, id auth.Identity) (int, error) {
	p := access.Scope(access.Members, id).And("m.is_active = TRUE")
	return r.count(ctx, `SELECT COUNT(m.id) FROM members m`, p)
}

func (r *repository) SessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) ([]TodaySession, error) {
	p := access.Scope(access.Sessions, id).And(onDayNotCancelled, datetime.StartOfDay(day), datetime.EndOfDay(day))
	query := db.Rebind(`SELECT s.id, s.scheduled_at, s.duration_minutes, s.status, m.name AS member_name, u.name AS trainer_name` +
		sessionsFrom + ` JOIN users u ON u.id = s.trainer_id WHERE ` + p.Clause + ` ORDER BY s.scheduled_at, s.id`)

	sessions := []TodaySession{}
	if err := r.db.SelectContext(ctx, &sessions, query, p.Args...); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) Expiring(ctx context.Context, id auth.Identity, from, to datetime.Date) ([]ExpiringPackage, error) {
	p := access.Scope(access.MemberPackages, id).And(expiringBetween, from, to)
	query := db.Rebind(`SELECT mp.id, m.name AS member_name, p.name AS package_name, mp.sessions_remaining, mp.expiry_date` +
		packagesFrom + ` JOIN packages p ON p.id = mp.package_id WHERE ` + p.Clause + ` ORDER BY mp.expiry_date, mp.id`)

	packages := []ExpiringPackage{}
	if err := r.db.SelectContext(ctx, &packages, query, p.Args...); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *repository) count(ctx context.Context, selectFrom string, p access.Predicate) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, db.Rebind(selectFrom+` WHERE `+p.Clause), p.Args...)
	return n, err
}
