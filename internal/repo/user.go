package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/planventure/planventure-api/internal/models"
)

var ErrUserAlreadyExists = errors.New("user already exists")

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExists
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SetResetToken records the issued reset token and its storage-level
// expiry on the user row.
func (r *GormRepo) SetResetToken(ctx context.Context, userID uint, token string, expiresAt int64) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"reset_token": token, "reset_expires_at": expiresAt}).Error
}

// ReplacePassword swaps the stored hash and clears the reset-token
// fields in a single transaction.
func (r *GormRepo) ReplacePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"password_hash":    passwordHash,
				"reset_token":      "",
				"reset_expires_at": 0,
			}).Error
	})
}

// DeleteUser removes the user together with owned trips and forms.
func (r *GormRepo) DeleteUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Trip{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Form{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
