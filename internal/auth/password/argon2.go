package password

import (
	"errors"
	"sync"

	"github.com/alexedwards/argon2id"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Hasher: argon2id. Пустой encodedHash в Verify сверяется с заглушкой,
// чтобы вход под несуществующим email стоил столько же, сколько под существующим.
type Hasher struct {
	params *argon2id.Params

	decoyOnce sync.Once
	decoy     string
	decoyErr  error
}

var _ domain.PasswordHasher = (*Hasher)(nil)

var errNoParams = errors.New("argon2id params not set")

func NewDefault() *Hasher {
	return New(argon2id.DefaultParams)
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

// Hash возвращает строку формата $argon2id$v=19$m=...; соль внутри.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errNoParams
	}
	return argon2id.CreateHash(plain, h.params)
}

func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	if encodedHash == "" {
		decoy, err := h.decoyHash()
		if err != nil {
			return false, err
		}
		_, err = argon2id.ComparePasswordAndHash(plain, decoy)
		return false, err
	}
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}

func (h *Hasher) decoyHash() (string, error) {
	h.decoyOnce.Do(func() {
		h.decoy, h.decoyErr = h.Hash("decoy-password-never-matches")
	})
	return h.decoy, h.decoyErr
}
