package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// memStore: in-memory реализация репозиториев с теми же уникальными ограничениями, что и схема.
type memStore struct {
	mu      sync.Mutex
	users   map[domain.UserID]domain.User
	folders map[domain.FolderID]domain.Folder
	files   map[domain.FileID]domain.File
	links   map[domain.ShareLinkID]domain.ShareLink

	// hideSiblings имитирует гонку: проверка соседей ничего не видит, срабатывает только "индекс"
	hideSiblings   bool
	failCreateFile error
	now            time.Time
	txDepth        int
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[domain.UserID]domain.User{},
		folders: map[domain.FolderID]domain.Folder{},
		files:   map[domain.FileID]domain.File{},
		links:   map[domain.ShareLinkID]domain.ShareLink{},
		now:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.txDepth++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.txDepth--
		m.mu.Unlock()
	}()
	return fn(ctx)
}

func (m *memStore) inTx() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txDepth > 0
}

func (m *memStore) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Email == u.Email {
			return domain.User{}, fmt.Errorf("uq_users_email: %w", domain.ErrConflict)
		}
	}
	u.CreatedAt, u.UpdatedAt = m.now, m.now
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memStore) UserByID(_ context.Context, id domain.UserID) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func sameParent(a, b *domain.FolderID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memStore) CreateFolder(_ context.Context, f domain.Folder) (domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ParentID != nil {
		if _, ok := m.folders[*f.ParentID]; !ok {
			return domain.Folder{}, fmt.Errorf("folders_parent_id_fkey: %w", domain.ErrNotFound)
		}
	}
	for _, x := range m.folders {
		if x.DeletedAt == nil && x.OwnerID == f.OwnerID && sameParent(x.ParentID, f.ParentID) && x.Name == f.Name {
			return domain.Folder{}, fmt.Errorf("uq_folders_user_parent_name: %w", domain.ErrConflict)
		}
	}
	f.CreatedAt, f.UpdatedAt = m.now, m.now
	m.folders[f.ID] = f
	return f, nil
}

func (m *memStore) FolderByID(_ context.Context, id domain.FolderID) (domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok || f.DeletedAt != nil {
		return domain.Folder{}, domain.ErrNotFound
	}
	return f, nil
}

func (m *memStore) FoldersByParent(_ context.Context, owner domain.UserID, parent *domain.FolderID) ([]domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Folder{}
	if m.hideSiblings {
		return out, nil
	}
	for _, f := range m.folders {
		if f.OwnerID == owner && f.DeletedAt == nil && sameParent(f.ParentID, parent) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) CreateFile(_ context.Context, f domain.File) (domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateFile != nil {
		return domain.File{}, m.failCreateFile
	}
	if _, ok := m.folders[f.FolderID]; !ok {
		return domain.File{}, fmt.Errorf("files_folder_id_fkey: %w", domain.ErrNotFound)
	}
	for _, x := range m.files {
		if x.StorageKey == f.StorageKey {
			return domain.File{}, fmt.Errorf("uq_files_storage_key: %w", domain.ErrConflict)
		}
	}
	f.CreatedAt, f.UpdatedAt = m.now, m.now
	m.files[f.ID] = f
	return f, nil
}

func (m *memStore) FileByID(_ context.Context, id domain.FileID) (domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok || f.DeletedAt != nil {
		return domain.File{}, domain.ErrNotFound
	}
	return f, nil
}

func (m *memStore) FilesByFolder(_ context.Context, owner domain.UserID, folder *domain.FolderID) ([]domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.File{}
	if folder == nil {
		return out, nil
	}
	for _, f := range m.files {
		if f.OwnerID == owner && f.DeletedAt == nil && f.FolderID == *folder {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) SoftDeleteFile(_ context.Context, id domain.FileID, owner domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok || f.OwnerID != owner || f.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := m.now
	f.DeletedAt = &now
	m.files[id] = f
	return nil
}

func (m *memStore) CreateShareLink(_ context.Context, l domain.ShareLink) (domain.ShareLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.links {
		if x.Token == l.Token {
			return domain.ShareLink{}, fmt.Errorf("uq_share_links_token: %w", domain.ErrConflict)
		}
	}
	l.CreatedAt, l.UpdatedAt = m.now, m.now
	m.links[l.ID] = l
	return l, nil
}

func (m *memStore) ShareLinkByID(_ context.Context, id domain.ShareLinkID) (domain.ShareLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[id]
	if !ok {
		return domain.ShareLink{}, domain.ErrNotFound
	}
	return l, nil
}

func (m *memStore) ShareLinkByToken(_ context.Context, token string) (domain.ShareLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.Token == token {
			return l, nil
		}
	}
	return domain.ShareLink{}, domain.ErrNotFound
}

func (m *memStore) ShareLinksByFile(_ context.Context, file domain.FileID) ([]domain.ShareLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ShareLink{}
	for _, l := range m.links {
		if l.FileID == file {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) DisableShareLink(_ context.Context, id domain.ShareLinkID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.IsDisabled = true
	m.links[id] = l
	return nil
}

// memBlobs: хранилище объектов в памяти; PresignGet отдаёт детерминированную ссылку по ключу.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	mimes   map[string]string
	putErr  error
	deleted []string
	onPut   func()
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}, mimes: map[string]string{}}
}

func (b *memBlobs) Put(ctx context.Context, key string, r io.Reader, _ int64, mime string) error {
	if b.onPut != nil {
		b.onPut()
	}
	if b.putErr != nil {
		return b.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = buf.Bytes()
	b.mimes[key] = mime
	return nil
}

func (b *memBlobs) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://blobs.test/drive/" + key + "?expires=" + strconv.Itoa(int(ttl.Seconds())), nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *memBlobs) Ping(context.Context) error { return nil }

func (b *memBlobs) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok
}

// memCache: domain.Cache в памяти, TTL игнорируется.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	c.sets++
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	v++
	c.data[key] = []byte(strconv.FormatInt(v, 10))
	return v, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close()                     {}

// plainHasher: быстрый хешер для тестов.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) (bool, error) {
	return h == "hashed:"+p, nil
}

// fakeTokens: токен это "tok:<jti>", клеймы хранятся в памяти.
type fakeTokens struct {
	mu     sync.Mutex
	issued map[domain.Token]domain.TokenClaims
}

func newFakeTokens() *fakeTokens { return &fakeTokens{issued: map[domain.Token]domain.TokenClaims{}} }

func (t *fakeTokens) Issue(_ context.Context, u domain.User) (domain.Token, domain.TokenClaims, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := domain.TokenClaims{
		JTI:       uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tok := domain.Token("tok:" + c.JTI)
	t.issued[tok] = c
	return tok, c, nil
}

func (t *fakeTokens) Parse(_ context.Context, tok domain.Token) (domain.TokenClaims, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.issued[tok]
	if !ok {
		return domain.TokenClaims{}, errors.New("bad token")
	}
	return c, nil
}

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (b *memBlacklist) Revoke(_ context.Context, c domain.TokenClaims) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revoked == nil {
		b.revoked = map[string]time.Time{}
	}
	b.revoked[c.JTI] = c.ExpiresAt
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, c domain.TokenClaims) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[c.JTI]
	return ok, nil
}

// env собирает все сервисы поверх одного memStore.
type env struct {
	store    *memStore
	blobs    *memBlobs
	cache    *memCache
	identity *Identity
	folders  *Folders
	files    *Files
	links    *ShareLinks
}

func newEnv() *env {
	st := newMemStore()
	blobs := newMemBlobs()
	cache := newMemCache()
	log := zap.NewNop()
	gate := NewGate(st, st, st)

	links := NewShareLinks(log, st, st, st, gate, blobs, time.Hour)
	links.now = func() time.Time { return st.now }

	return &env{
		store:    st,
		blobs:    blobs,
		cache:    cache,
		identity: NewIdentity(log, st, plainHasher{}, newFakeTokens(), &memBlacklist{}),
		folders:  NewFolders(log, st, st, st, gate, cache, time.Minute),
		files:    NewFiles(log, st, st, gate, blobs, time.Hour, cache, time.Minute),
		links:    links,
	}
}

func (e *env) user(t *testing.T, email string) domain.UserID {
	t.Helper()
	u, err := e.identity.Register(context.Background(), email, "pw1")
	require.NoError(t, err)
	return u.ID
}
