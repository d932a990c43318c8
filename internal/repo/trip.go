package repo

import (
	"context"

	"github.com/planventure/planventure-api/internal/models"
)

func (r *GormRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	return r.DB.WithContext(ctx).Create(trip).Error
}

func (r *GormRepo) ListTrips(ctx context.Context, userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *GormRepo) GetTrip(ctx context.Context, userID, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, userID).
		First(&trip).Error; err != nil {
		return nil, translate(err)
	}
	return &trip, nil
}

func (r *GormRepo) SaveTrip(ctx context.Context, trip *models.Trip) error {
	return r.DB.WithContext(ctx).Save(trip).Error
}

func (r *GormRepo) DeleteTrip(ctx context.Context, userID, tripID uint) error {
	tx := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, userID).
		Delete(&models.Trip{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
