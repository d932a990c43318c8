package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/planventure/planventure-api/internal/hash"
	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/mail"
	"github.com/planventure/planventure-api/internal/models"
	"github.com/planventure/planventure-api/internal/mykafka"
	"github.com/planventure/planventure-api/internal/repo"
	"github.com/planventure/planventure-api/internal/tokens"
	"github.com/planventure/planventure-api/internal/validation"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Issuer *tokens.Issuer
	Reset  *tokens.ResetCodec

	Mailer      mail.Mailer
	Producer    *mykafka.Producer
	FrontendURL string
}

func subjectFor(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func userIDFromSubject(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad subject %q: %w", subject, err)
	}
	return uint(id), nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}

func (s *AuthService) issueAndSave(ctx context.Context, r *repo.GormRepo, userID uint, remember bool) (*tokens.Pair, error) {
	pair, err := s.Issuer.Issue(subjectFor(userID), remember)
	if err != nil {
		return nil, err
	}
	claims, err := tokens.RefreshClaimsFromToken(pair.RefreshToken, s.Issuer.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if err := r.SaveRefreshToken(ctx, pair.RefreshToken, claims, userID); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, *tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return nil, nil, err
	}

	user := models.User{Email: email, PasswordHash: pwHash}
	var pair *tokens.Pair
	err = s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		if err := r.CreateUserIfNotExists(ctx, &user); err != nil {
			return err
		}
		p, err := s.issueAndSave(ctx, r, user.ID, false)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			return nil, nil, fmt.Errorf("%w: email taken", ErrConflict)
		}
		l.Error("register failed", "error", err)
		return nil, nil, err
	}

	s.publish(ctx, "user_events", subjectFor(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*models.User, *tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueAndSave(ctx, s.Repo, user.ID, remember)
	if err != nil {
		l.Error("login failed", "reason", "token issuance", "error", err)
		return nil, nil, err
	}

	s.publish(ctx, "user_events", subjectFor(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return user, pair, nil
}

// Refresh validates the presented refresh token and rotates it: the old
// row is revoked and a brand-new pair bound to the same subject is
// issued. Expired and malformed tokens surface as distinct errors.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.Issuer.RefreshSecret)
	if err != nil {
		return nil, err
	}

	usable, err := s.Repo.RefreshUsable(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !usable {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := userIDFromSubject(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Revocation and replacement commit together: a failed save must
	// not leave the client with a revoked token and no successor.
	var pair *tokens.Pair
	err = s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		if err := r.RevokeRefreshByJTI(ctx, claims.ID); err != nil {
			return err
		}
		p, err := s.issueAndSave(ctx, r, userID, false)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	return s.Repo.RevokeRefreshByToken(ctx, rawRefresh)
}

// ForgotPassword issues a reset token and emails the reset link. The
// response is identical whether or not the email resolves to a user,
// and a delivery failure never turns into a request failure.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password")

	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	token := s.Reset.Issue(email)
	expiresAt := s.Reset.Expiry()
	if err := s.Repo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}

	link := s.FrontendURL + "/reset-password?token=" + url.QueryEscape(token)
	if s.Mailer != nil {
		if err := s.Mailer.SendPasswordReset(ctx, email, link); err != nil {
			l.Error("reset email delivery failed", "error", err)
		}
	}
	return nil
}

// ResetPassword requires the self-describing token check and the
// storage-level token/expiry check to both pass before the stored hash
// is replaced. The duplication is intentional.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, valid := s.Reset.Verify(token)
	if !valid {
		return ErrInvalidResetToken
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.ResetToken == "" || user.ResetToken != token || time.Now().Unix() > user.ResetExpiresAt {
		return ErrInvalidResetToken
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.ReplacePassword(ctx, user.ID, pwHash)
}

// DeleteAccount removes the user together with owned trips, forms and
// refresh tokens.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.Repo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.publish(ctx, "user_events", subjectFor(userID), map[string]any{
		"type":    "user_deleted",
		"user_id": userID,
		"email":   user.Email,
	})
	return nil
}

// LoginWithProvider resolves an externally authenticated email to a
// local account, creating one with an unguessable password when absent,
// and issues the usual token pair.
func (s *AuthService) LoginWithProvider(ctx context.Context, email string) (*models.User, *tokens.Pair, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, nil, err
		}
		pwHash, hashErr := hash.HashPassword(uuid.NewString())
		if hashErr != nil {
			return nil, nil, hashErr
		}
		created := models.User{Email: email, PasswordHash: pwHash}
		var pair *tokens.Pair
		err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
			if err := r.CreateUserIfNotExists(ctx, &created); err != nil && !errors.Is(err, repo.ErrUserAlreadyExists) {
				return err
			}
			p, err := s.issueAndSave(ctx, r, created.ID, false)
			if err != nil {
				return err
			}
			pair = p
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		return &created, pair, nil
	}

	pair, err := s.issueAndSave(ctx, s.Repo, user.ID, false)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}
