// Package credstore persists the administrator's bearer token between runs.
//
// The token is sealed (see Sealer) and kept in the metadata table of the
// local SQLite database under the per-user application data directory. The
// last email used to log in is kept next to it, unsealed.
package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dndadmin/internal/client/client"
	"github.com/dmitrijs2005/dndadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dndadmin/internal/dbx"
	"github.com/dmitrijs2005/dndadmin/internal/filex"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "admin.db"

type Store struct {
	db     *sql.DB
	repo   metadata.Repository
	sealer Sealer
	logger logging.Logger
}

// New wraps an already migrated database.
func New(db *sql.DB, sealer Sealer, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		db:     db,
		repo:   metadata.NewSQLiteRepository(db),
		sealer: sealer,
		logger: logger.With("component", "credstore"),
	}
}

// Open prepares dir (0700), opens and migrates <dir>/admin.db and sets up
// the named sealer.
func Open(ctx context.Context, dir, sealerName string, logger logging.Logger) (*Store, error) {
	abs, err := filex.EnsurePrivateDir(dir)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	sealer, err := NewSealer(sealerName, abs)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	db, err := client.InitDatabase(ctx, filepath.Join(abs, DatabaseFile))
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	return New(db, sealer, logger), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save seals token and stores it, replacing any previous one.
func (s *Store) Save(ctx context.Context, token string) error {
	return s.save(ctx, s.repo, token)
}

// SaveSession stores the token and the email it was issued for in one
// transaction.
func (s *Store) SaveSession(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := s.save(ctx, repo, token); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeyLastEmail, []byte(email)); err != nil {
			return &StorageError{Op: "write", Err: err}
		}
		return nil
	})
}

func (s *Store) save(ctx context.Context, repo metadata.Repository, token string) error {
	if strings.TrimSpace(token) == "" {
		return &StorageError{Op: "write", Err: errors.New("empty token")}
	}
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return &StorageError{Op: "write", Err: fmt.Errorf("seal: %w", err)}
	}
	if err := repo.Set(ctx, metadata.KeyToken, sealed); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	s.logger.Debug(ctx, "token saved")
	return nil
}

// Load returns the stored token. ok is false when nothing is stored.
// Undecryptable data yields a *StorageError with Op "decrypt".
func (s *Store) Load(ctx context.Context) (token string, ok bool, err error) {
	sealed, found, err := s.repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", false, &StorageError{Op: "read", Err: err}
	}
	if !found {
		return "", false, nil
	}

	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return "", false, &StorageError{Op: "decrypt", Err: err}
	}
	if len(plain) == 0 {
		return "", false, &StorageError{Op: "decrypt", Err: errors.New("empty token")}
	}
	return string(plain), true, nil
}

// Clear removes the stored token. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, metadata.KeyToken); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	s.logger.Debug(ctx, "token cleared")
	return nil
}

// LastEmail returns the email of the last successful login, or "".
func (s *Store) LastEmail(ctx context.Context) (string, error) {
	v, ok, err := s.repo.Get(ctx, metadata.KeyLastEmail)
	if err != nil {
		return "", &StorageError{Op: "read", Err: err}
	}
	if !ok {
		return "", nil
	}
	return string(v), nil
}
