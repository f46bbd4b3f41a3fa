package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/my-drive/internal/domain"
)

const maxJSONBody = 1 << 20

// PathID читает uuid из сегмента пути. Невалидный id: это тот же 404, что и несуществующий.
func PathID(r *http.Request, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// DecodeJSON строго разбирает тело запроса в dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBadParams, err)
	}
	return nil
}

// CurrentUser: пользователь, положенный mw.RequireAuth.
func CurrentUser(r *http.Request) (domain.User, error) {
	u, ok := domain.UserFromCtx(r.Context())
	if !ok {
		return domain.User{}, domain.ErrUnauth
	}
	return u, nil
}
