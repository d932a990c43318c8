package repo

import (
	"context"
	"errors"
	"time"

	"github.com/planventure/planventure-api/internal/models"
	"github.com/planventure/planventure-api/internal/tokens"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, rawToken string, claims *tokens.RefreshClaims, userID uint) error {
	row := models.RefreshToken{
		JTI:       claims.ID,
		TokenHash: tokens.Sha256Hex(rawToken),
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

// RefreshUsable reports whether the refresh token row behind jti still
// exists, is unrevoked and unexpired.
func (r *GormRepo) RefreshUsable(ctx context.Context, jti string) (bool, error) {
	var row models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&row).Error; err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if row.Revoked || time.Now().Unix() > row.ExpiresAt {
		return false, nil
	}
	return true, nil
}

func (r *GormRepo) RevokeRefreshByJTI(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

func (r *GormRepo) RevokeRefreshByToken(ctx context.Context, rawToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokens.Sha256Hex(rawToken)).
		Update("revoked", true).Error
}
