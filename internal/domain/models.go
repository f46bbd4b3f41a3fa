package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type FolderID = uuid.UUID
type FileID = uuid.UUID
type ShareLinkID = uuid.UUID

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Папка. ParentID == nil: корень пользователя.
type Folder struct {
	ID        FolderID   `json:"id"`
	OwnerID   UserID     `json:"user_id"`
	Name      string     `json:"name"`
	ParentID  *FolderID  `json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Метаданные файла (без тела)
type File struct {
	ID        FileID     `json:"id"`
	OwnerID   UserID     `json:"user_id"`
	FolderID  FolderID   `json:"folder_id"`
	Name      string     `json:"name"`
	SizeBytes int64      `json:"size_bytes"`
	MIME      string     `json:"mime_type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Ключ в blob-хранилище, вычисляется один раз при создании
	StorageKey string `json:"-"`
}

// StorageKeyFor формирует ключ объекта "{user_id}/{file_id}".
func StorageKeyFor(owner UserID, id FileID) string {
	return owner.String() + "/" + id.String()
}

// Публичная ссылка на чтение одного файла
type ShareLink struct {
	ID         ShareLinkID `json:"id"`
	FileID     FileID      `json:"file_id"`
	OwnerID    UserID      `json:"-"`
	Token      string      `json:"token"`
	ExpiresAt  *time.Time  `json:"expires_at"`
	IsDisabled bool        `json:"is_disabled"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Expired: ссылка с expires_at строго раньше now недоступна.
func (l ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// Содержимое одного уровня папки
type FolderContent struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

type SystemHealth struct {
	Status       string    `json:"status"`
	DatabaseTime time.Time `json:"database_time"`
}
