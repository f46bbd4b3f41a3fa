package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

var _ domain.FoldersRepo = (*PGRepo)(nil)

var folderColumns = []string{"id", "user_id", "name", "parent_id", "created_at", "updated_at", "deleted_at"}

func scanFolder(row pgx.Row) (domain.Folder, error) {
	var f domain.Folder
	err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.ParentID, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt)
	return f, err
}

func (r *PGRepo) CreateFolder(ctx context.Context, f domain.Folder) (domain.Folder, error) {
	const op = "CreateFolder"
	q := r.qb().Insert(r.table("folders")).
		Columns("id", "user_id", "name", "parent_id").
		Values(f.ID, f.OwnerID, f.Name, f.ParentID).
		Suffix("RETURNING id, user_id, name, parent_id, created_at, updated_at, deleted_at")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.Folder{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	out, err := scanFolder(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug("CreateFolder failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.Folder{}, mapErr(err)
	}
	r.logger.Debug("CreateFolder ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", out.ID))
	return out, nil
}

func (r *PGRepo) FolderByID(ctx context.Context, id domain.FolderID) (domain.Folder, error) {
	const op = "FolderByID"
	q := r.qb().Select(folderColumns...).
		From(r.table("folders")).
		Where(sq.Eq{"id": id, "deleted_at": nil})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.Folder{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	f, err := scanFolder(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug("FolderByID failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.Folder{}, mapErr(err)
	}
	r.logger.Debug("FolderByID ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", f.ID))
	return f, nil
}

func (r *PGRepo) FoldersByParent(ctx context.Context, owner domain.UserID, parent *domain.FolderID) ([]domain.Folder, error) {
	const op = "FoldersByParent"
	// squirrel превращает nil в IS NULL только для нетипизированного nil
	pred := sq.Eq{"user_id": owner, "deleted_at": nil, "parent_id": nil}
	if parent != nil {
		pred["parent_id"] = *parent
	}
	q := r.qb().Select(folderColumns...).
		From(r.table("folders")).
		Where(pred).
		OrderBy("name ASC", "id ASC")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Debug("FoldersByParent query failed", zap.Error(err))
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("FoldersByParent ok", zap.Duration("took", time.Since(start)), zap.Int("count", len(out)))
	return out, nil
}
