// Package services contains server-side business logic. This file
// implements IdentityService, which handles registration, login, password
// changes, and account deletion, issuing signed session tokens on success.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkhromov/fittrack/internal/common"
	"github.com/dkhromov/fittrack/internal/dbx"
	"github.com/dkhromov/fittrack/internal/server/auth"
	"github.com/dkhromov/fittrack/internal/server/config"
	"github.com/dkhromov/fittrack/internal/server/models"
	"github.com/dkhromov/fittrack/internal/server/password"
	"github.com/dkhromov/fittrack/internal/server/repositories/repomanager"
)

// IdentityService provides authentication-related operations:
// - Register: create accounts and mint a first session token
// - Login: verify credentials and mint tokens
// - ChangePassword: re-hash and overwrite the stored credential
// - DeleteAccount: remove the account and everything it owns
type IdentityService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                *password.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	queryTimeout          time.Duration
}

// NewIdentityService constructs an IdentityService using repositories,
// the credential codec, and server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, hasher *password.Hasher, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		queryTimeout:          cfg.QueryTimeout,
	}
}

// Register creates a new account and returns a session token. A taken
// email yields common.ErrorAlreadyExists. The existence pre-check only
// buys a friendlier error; the email unique constraint in the store is
// what actually prevents duplicates under concurrent registration.
func (s *IdentityService) Register(ctx context.Context, email, plaintextPassword string) (string, error) {
	repo := s.repomanager.Users(s.db)

	var exists bool
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		exists, err = repo.ExistsByEmail(ctx, email)
		return err
	})
	if err != nil {
		return "", common.ErrorInternal
	}
	if exists {
		return "", common.ErrorAlreadyExists
	}

	hash, err := s.hasher.Hash(plaintextPassword)
	if err != nil {
		// Never fall back to storing anything unhashed.
		return "", err
	}

	user := &models.User{Email: email, PasswordHash: hash}
	err = dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", common.ErrorInternal
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a session token. Unknown
// email and wrong password are both common.ErrorUnauthorized, so the
// response does not reveal which accounts exist.
func (s *IdentityService) Login(ctx context.Context, email, plaintextPassword string) (string, error) {
	repo := s.repomanager.Users(s.db)

	var user *models.User
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		user, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(plaintextPassword, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash: fail the operation, never treat as a match.
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	return s.issueToken(user)
}

// ChangePassword re-hashes and overwrites the stored credential. Session
// tokens issued earlier stay valid until natural expiry: tokens are
// stateless and there is no server-side revocation.
func (s *IdentityService) ChangePassword(ctx context.Context, userID, newPlaintextPassword string) (string, error) {
	hash, err := s.hasher.Hash(newPlaintextPassword)
	if err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.db)
	err = dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.UpdatePasswordHash(ctx, userID, hash)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	return userID, nil
}

// DeleteAccount removes the account; plans, exercises, and photos cascade
// in the store.
func (s *IdentityService) DeleteAccount(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)

	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

// generateToken is a seam for testing token-issuance failures.
var generateToken = auth.GenerateToken

func (s *IdentityService) issueToken(user *models.User) (string, error) {
	token, err := generateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("issuing token: %v: %w", err, common.ErrorInternal)
	}
	return token, nil
}
