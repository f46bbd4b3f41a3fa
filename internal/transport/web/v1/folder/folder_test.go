package folder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

type fakeFolders struct {
	gotParent *domain.FolderID
	gotFolder *domain.FolderID
	gotName   string
	err       error
	listed    bool
}

func (f *fakeFolders) CreateFolder(_ context.Context, owner domain.UserID, name string, parent *domain.FolderID) (domain.Folder, error) {
	f.gotName, f.gotParent = name, parent
	if f.err != nil {
		return domain.Folder{}, f.err
	}
	return domain.Folder{ID: uuid.New(), OwnerID: owner, Name: name, ParentID: parent}, nil
}

func (f *fakeFolders) ListContent(_ context.Context, _ domain.UserID, folder *domain.FolderID) (domain.FolderContent, error) {
	f.listed = true
	f.gotFolder = folder
	if f.err != nil {
		return domain.FolderContent{}, f.err
	}
	return domain.FolderContent{Folders: []domain.Folder{}, Files: []domain.File{}}, nil
}

// mux повторяет маршруты роутера, чтобы проверить PathValue и приоритет /root/.
func newMux(f *fakeFolders) http.Handler {
	h := &Handler{Log: zap.NewNop(), Folders: f}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders", h.Create)
	mux.HandleFunc("GET /folders/root/content", h.RootContent)
	mux.HandleFunc("GET /folders/{id}/content", h.Content)
	return withUser(mux)
}

func withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := domain.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111")}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

func TestCreateFolder(t *testing.T) {
	parent := uuid.New()
	tests := []struct {
		name       string
		body       string
		err        error
		status     int
		wantParent bool
	}{
		{"root", `{"name":"Docs"}`, nil, http.StatusCreated, false},
		{"nested", `{"name":"Sub","parent_id":"` + parent.String() + `"}`, nil, http.StatusCreated, true},
		{"explicit null parent", `{"name":"Docs","parent_id":null}`, nil, http.StatusCreated, false},
		{"duplicate", `{"name":"Docs"}`, domain.ErrFolderAlreadyExists, http.StatusConflict, false},
		{"bad parent", `{"name":"Sub","parent_id":"` + parent.String() + `"}`, domain.ErrFolderNotFound, http.StatusNotFound, true},
		{"malformed parent id", `{"name":"Sub","parent_id":"zzz"}`, nil, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFolders{err: tt.err}
			rec := httptest.NewRecorder()
			newMux(f).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/folders", strings.NewReader(tt.body)))

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.wantParent {
				require.NotNil(t, f.gotParent)
				assert.Equal(t, parent, *f.gotParent)
			} else {
				assert.Nil(t, f.gotParent)
			}
		})
	}
}

func TestContentRouting(t *testing.T) {
	id := uuid.New()

	f := &fakeFolders{}
	rec := httptest.NewRecorder()
	newMux(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folders/root/content", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.listed)
	assert.Nil(t, f.gotFolder, "root listing must pass nil folder")

	f = &fakeFolders{}
	rec = httptest.NewRecorder()
	newMux(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folders/"+id.String()+"/content", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.gotFolder)
	assert.Equal(t, id, *f.gotFolder)

	var env struct {
		Data domain.FolderContent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.NotNil(t, env.Data.Folders, "lists must be [] not null")
	assert.NotNil(t, env.Data.Files, "lists must be [] not null")

	f = &fakeFolders{}
	rec = httptest.NewRecorder()
	newMux(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folders/not-a-uuid/content", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, f.listed)
}

func TestContentNotFound(t *testing.T) {
	f := &fakeFolders{err: domain.ErrFolderNotFound}
	rec := httptest.NewRecorder()
	newMux(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folders/"+uuid.NewString()+"/content", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
