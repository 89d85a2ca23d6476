package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/filex"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

type jsonAccount struct {
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

// JSONRepository keeps the account table as one JSON object keyed by
// identity. Every change rewrites the whole file.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) load() (map[string]jsonAccount, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]jsonAccount{}, nil
		}
		return nil, fmt.Errorf("read accounts %s: %w", r.path, err)
	}

	users := map[string]jsonAccount{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode accounts %s: %w", r.path, err)
	}
	return users, nil
}

func (r *JSONRepository) save(users map[string]jsonAccount) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := filex.WriteBytesAtomic(r.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write accounts %s: %w", r.path, err)
	}
	return nil
}

func (r *JSONRepository) Get(ctx context.Context, identity string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	u, ok := users[identity]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Account{Identity: identity, PasswordHash: u.Password, CreatedAt: u.CreatedAt}, nil
}

func (r *JSONRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := users[account.Identity]; ok {
		return common.ErrorAlreadyExists
	}

	users[account.Identity] = jsonAccount{Password: account.PasswordHash, CreatedAt: account.CreatedAt}
	return r.save(users)
}

func (r *JSONRepository) Delete(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := users[identity]; !ok {
		return common.ErrorNotFound
	}

	delete(users, identity)
	return r.save(users)
}

// List returns accounts ordered by creation time, then identity.
func (r *JSONRepository) List(ctx context.Context) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make([]models.Account, 0, len(users))
	for id, u := range users {
		out = append(out, models.Account{Identity: id, PasswordHash: u.Password, CreatedAt: u.CreatedAt})
	}
	sortAccounts(out)
	return out, nil
}
