package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planventure/planventure-api/internal/formschema"
	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/models"
	"github.com/planventure/planventure-api/internal/mykafka"
	"github.com/planventure/planventure-api/internal/repo"
)

type FormService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (s *FormService) Submit(ctx context.Context, userID uint, formType string, data map[string]any) (*models.Form, error) {
	if err := formschema.Validate(formType, data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	form := models.Form{
		UserID:   userID,
		FormType: formType,
		Data:     data,
		Status:   "pending",
	}
	if err := s.Repo.CreateForm(ctx, &form); err != nil {
		return nil, err
	}

	if s.Producer != nil {
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		event := map[string]any{
			"type":      "form_submitted",
			"form_id":   form.ID,
			"form_type": formType,
			"user_id":   userID,
		}
		if err := s.Producer.PublishEvent(pubCtx, "form_events", fmt.Sprint(userID), event); err != nil {
			logging.FromContext(ctx).Error("kafka publish error", "topic", "form_events", "error", err)
		}
	}

	return &form, nil
}

func (s *FormService) List(ctx context.Context, userID uint) ([]models.Form, error) {
	return s.Repo.ListForms(ctx, userID)
}

func (s *FormService) Get(ctx context.Context, userID, formID uint) (*models.Form, error) {
	form, err := s.Repo.GetForm(ctx, userID, formID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return form, nil
}
