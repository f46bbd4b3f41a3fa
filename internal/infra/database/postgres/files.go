package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

var _ domain.FilesRepo = (*PGRepo)(nil)

var fileColumns = []string{
	"id", "user_id", "folder_id", "name", "size_bytes", "mime_type",
	"storage_key", "created_at", "updated_at", "deleted_at",
}

func scanFile(row pgx.Row) (domain.File, error) {
	var f domain.File
	err := row.Scan(&f.ID, &f.OwnerID, &f.FolderID, &f.Name, &f.SizeBytes, &f.MIME,
		&f.StorageKey, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt)
	return f, err
}

func (r *PGRepo) CreateFile(ctx context.Context, f domain.File) (domain.File, error) {
	const op = "CreateFile"
	q := r.qb().Insert(r.table("files")).
		Columns("id", "user_id", "folder_id", "name", "size_bytes", "mime_type", "storage_key").
		Values(f.ID, f.OwnerID, f.FolderID, f.Name, f.SizeBytes, f.MIME, f.StorageKey).
		Suffix("RETURNING id, user_id, folder_id, name, size_bytes, mime_type, storage_key, created_at, updated_at, deleted_at")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.File{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	out, err := scanFile(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug("CreateFile failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.File{}, mapErr(err)
	}
	r.logger.Debug("CreateFile ok", zap.Duration("took", time.Since(start)),
		zap.Stringer("id", out.ID), zap.Int64("size", out.SizeBytes))
	return out, nil
}

func (r *PGRepo) FileByID(ctx context.Context, id domain.FileID) (domain.File, error) {
	const op = "FileByID"
	q := r.qb().Select(fileColumns...).
		From(r.table("files")).
		Where(sq.Eq{"id": id, "deleted_at": nil})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return domain.File{}, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	f, err := scanFile(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Debug("FileByID failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return domain.File{}, mapErr(err)
	}
	r.logger.Debug("FileByID ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", f.ID))
	return f, nil
}

// FilesByFolder: файлы живут только в папках, поэтому для корня (folder == nil) список пуст.
func (r *PGRepo) FilesByFolder(ctx context.Context, owner domain.UserID, folder *domain.FolderID) ([]domain.File, error) {
	const op = "FilesByFolder"
	out := make([]domain.File, 0)
	if folder == nil {
		return out, nil
	}

	q := r.qb().Select(fileColumns...).
		From(r.table("files")).
		Where(sq.Eq{"user_id": owner, "folder_id": *folder, "deleted_at": nil}).
		OrderBy("name ASC", "created_at ASC")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Debug("FilesByFolder query failed", zap.Error(err))
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("FilesByFolder ok", zap.Duration("took", time.Since(start)), zap.Int("count", len(out)))
	return out, nil
}

func (r *PGRepo) SoftDeleteFile(ctx context.Context, id domain.FileID, owner domain.UserID) error {
	const op = "SoftDeleteFile"
	q := r.qb().Update(r.table("files")).
		Set("deleted_at", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": owner, "deleted_at": nil})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Debug("SoftDeleteFile failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("soft delete file %s: %w", id, domain.ErrNotFound)
	}
	r.logger.Debug("SoftDeleteFile ok", zap.Duration("took", time.Since(start)), zap.Stringer("id", id))
	return nil
}
