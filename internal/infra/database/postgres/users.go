package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

var _ domain.UsersRepo = (*PGRepo)(nil)

var userColumns = []string{"id", "email", "pass_hash", "created_at", "updated_at"}

func (r *PGRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const op = "CreateUser"
	q := r.qb().Insert(r.table("users")).
		Columns("id", "email", "pass_hash").
		Values(u.ID, u.Email, u.PassHash).
		Suffix("RETURNING id, email, pass_hash, created_at, updated_at")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.User{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	var out domain.User
	row := r.conn(ctx).QueryRow(ctx, sqlStr, args...)
	if err := row.Scan(&out.ID, &out.Email, &out.PassHash, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Debug("CreateUser failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.User{}, mapErr(err)
	}
	r.logger.Debug("CreateUser ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", out.ID))
	return out, nil
}

func (r *PGRepo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.userWhere(ctx, "UserByEmail", sq.Eq{"email": email})
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return r.userWhere(ctx, "UserByID", sq.Eq{"id": id})
}

func (r *PGRepo) userWhere(ctx context.Context, op string, pred sq.Eq) (domain.User, error) {
	q := r.qb().Select(userColumns...).
		From(r.table("users")).
		Where(pred)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.User{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	var u domain.User
	row := r.conn(ctx).QueryRow(ctx, sqlStr, args...)
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		r.logger.Debug(op+" failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.User{}, mapErr(err)
	}
	r.logger.Debug(op+" ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", u.ID))
	return u, nil
}
