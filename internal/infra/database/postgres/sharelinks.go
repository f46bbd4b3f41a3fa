package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

var _ domain.ShareLinksRepo = (*PGRepo)(nil)

var shareLinkColumns = []string{"id", "file_id", "user_id", "token", "expires_at", "is_disabled", "created_at", "updated_at"}

func scanShareLink(row pgx.Row) (domain.ShareLink, error) {
	var l domain.ShareLink
	err := row.Scan(&l.ID, &l.FileID, &l.OwnerID, &l.Token, &l.ExpiresAt, &l.IsDisabled, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *PGRepo) CreateShareLink(ctx context.Context, l domain.ShareLink) (domain.ShareLink, error) {
	const op = "CreateShareLink"
	q := r.qb().Insert(r.table("share_links")).
		Columns("id", "file_id", "user_id", "token", "expires_at", "is_disabled").
		Values(l.ID, l.FileID, l.OwnerID, l.Token, l.ExpiresAt, l.IsDisabled).
		Suffix("RETURNING id, file_id, user_id, token, expires_at, is_disabled, created_at, updated_at")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.ShareLink{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	out, err := scanShareLink(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug("CreateShareLink failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.ShareLink{}, mapErr(err)
	}
	r.logger.Debug("CreateShareLink ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", out.ID))
	return out, nil
}

func (r *PGRepo) ShareLinkByID(ctx context.Context, id domain.ShareLinkID) (domain.ShareLink, error) {
	return r.shareLinkWhere(ctx, "ShareLinkByID", sq.Eq{"id": id})
}

func (r *PGRepo) ShareLinkByToken(ctx context.Context, token string) (domain.ShareLink, error) {
	return r.shareLinkWhere(ctx, "ShareLinkByToken", sq.Eq{"token": token})
}

func (r *PGRepo) shareLinkWhere(ctx context.Context, op string, pred sq.Eq) (domain.ShareLink, error) {
	q := r.qb().Select(shareLinkColumns...).
		From(r.table("share_links")).
		Where(pred)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.ShareLink{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	l, err := scanShareLink(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug(op+" failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.ShareLink{}, mapErr(err)
	}
	r.logger.Debug(op+" ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", l.ID))
	return l, nil
}

func (r *PGRepo) ShareLinksByFile(ctx context.Context, file domain.FileID) ([]domain.ShareLink, error) {
	const op = "ShareLinksByFile"
	q := r.qb().Select(shareLinkColumns...).
		From(r.table("share_links")).
		Where(sq.Eq{"file_id": file}).
		OrderBy("created_at DESC")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.ShareLink, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("ShareLinksByFile ok", zap.Duration("took", time.Since(start)), zap.Int("count", len(out)))
	return out, nil
}

// DisableShareLink не трогает уже выключенную ссылку: повторный вызов не меняет updated_at.
func (r *PGRepo) DisableShareLink(ctx context.Context, id domain.ShareLinkID) error {
	const op = "DisableShareLink"
	q := r.qb().Update(r.table("share_links")).
		Set("is_disabled", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_disabled": false})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Debug("DisableShareLink failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return mapErr(err)
	}
	r.logger.Debug("DisableShareLink ok", zap.Duration("took", time.Since(start)),
		zap.Stringer("id", id), zap.Int64("affected", tag.RowsAffected()))
	return nil
}
