package domain

import (
	"context"
	"time"
)

// Единица работы: fn выполняется в одной транзакции, репозитории берут её из ctx.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Ошибки репозиториев: ErrNotFound при отсутствии строки, ErrConflict при нарушении уникальности.

type UsersRepo interface {
	CreateUser(ctx context.Context, u User) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}

type FoldersRepo interface {
	CreateFolder(ctx context.Context, f Folder) (Folder, error)
	// Только не удалённые папки
	FolderByID(ctx context.Context, id FolderID) (Folder, error)
	// Прямые потомки parent (nil означает корень) владельца owner, без удалённых
	FoldersByParent(ctx context.Context, owner UserID, parent *FolderID) ([]Folder, error)
}

type FilesRepo interface {
	CreateFile(ctx context.Context, f File) (File, error)
	// Только не удалённые файлы
	FileByID(ctx context.Context, id FileID) (File, error)
	FilesByFolder(ctx context.Context, owner UserID, folder *FolderID) ([]File, error)
	SoftDeleteFile(ctx context.Context, id FileID, owner UserID) error
}

type ShareLinksRepo interface {
	CreateShareLink(ctx context.Context, l ShareLink) (ShareLink, error)
	ShareLinkByID(ctx context.Context, id ShareLinkID) (ShareLink, error)
	ShareLinkByToken(ctx context.Context, token string) (ShareLink, error)
	ShareLinksByFile(ctx context.Context, file FileID) ([]ShareLink, error)
	// Идемпотентно выставляет is_disabled = true
	DisableShareLink(ctx context.Context, id ShareLinkID) error
}

type SystemRepo interface {
	Ping(context.Context) error
	DBTime(ctx context.Context) (time.Time, error)
}
