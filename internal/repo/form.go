package repo

import (
	"context"

	"github.com/planventure/planventure-api/internal/models"
)

func (r *GormRepo) CreateForm(ctx context.Context, form *models.Form) error {
	return r.DB.WithContext(ctx).Create(form).Error
}

func (r *GormRepo) ListForms(ctx context.Context, userID uint) ([]models.Form, error) {
	var forms []models.Form
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *GormRepo) GetForm(ctx context.Context, userID, formID uint) (*models.Form, error) {
	var form models.Form
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", formID, userID).
		First(&form).Error; err != nil {
		return nil, translate(err)
	}
	return &form, nil
}
