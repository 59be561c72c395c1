package services

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

const formCacheSize = 256

// FormService resolves custom forms by the feature they are attached to.
// Lookups are cached: forms change rarely but are read on every
// registration page load.
type FormService struct {
	forms repositories.CustomFormRepository
	cache *lru.Cache
}

func NewFormService(forms repositories.CustomFormRepository) (*FormService, error) {
	cache, err := lru.New(formCacheSize)
	if err != nil {
		return nil, err
	}
	return &FormService{forms: forms, cache: cache}, nil
}

func (s *FormService) List(ctx context.Context) ([]*models.CustomForm, error) {
	return s.forms.List(ctx)
}

func (s *FormService) ByID(ctx context.Context, id int64) (*models.CustomForm, error) {
	return s.forms.GetByID(ctx, id)
}

func (s *FormService) ByFeature(ctx context.Context, featureType string, featureID int64) (*models.CustomForm, error) {
	key := fmt.Sprintf("%s:%d", featureType, featureID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*models.CustomForm), nil
	}

	form, err := s.forms.GetByFeature(ctx, featureType, featureID)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, form)
	return form, nil
}

// Invalidate drops a cached feature binding. Called after any form write
// so admins see their edits immediately.
func (s *FormService) Invalidate(featureType string, featureID int64) {
	s.cache.Remove(fmt.Sprintf("%s:%d", featureType, featureID))
}

// Save creates or updates a form and invalidates its cache entry.
func (s *FormService) Save(ctx context.Context, form *models.CustomForm) error {
	var err error
	if form.ID == 0 {
		err = s.forms.Create(ctx, form)
	} else {
		err = s.forms.Update(ctx, form)
	}
	if err != nil {
		return err
	}
	if form.FeatureID != nil {
		s.Invalidate(form.FeatureType, *form.FeatureID)
	}
	return nil
}

// ToggleActive flips a form's active flag and returns the new state.
func (s *FormService) ToggleActive(ctx context.Context, id int64) (*models.CustomForm, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form.IsActive = !form.IsActive
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}
	if form.FeatureID != nil {
		s.Invalidate(form.FeatureType, *form.FeatureID)
	}
	return form, nil
}

// ListUnattached returns forms not yet bound to any feature.
func (s *FormService) ListUnattached(ctx context.Context) ([]*models.CustomForm, error) {
	return s.forms.ListUnattached(ctx)
}

// Attach binds a form to a feature; Detach releases it. Both drop the
// affected cache entries.
func (s *FormService) Attach(ctx context.Context, id int64, featureType string, featureID int64) (*models.CustomForm, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.FeatureID != nil {
		s.Invalidate(form.FeatureType, *form.FeatureID)
	}
	form.FeatureType = featureType
	form.FeatureID = &featureID
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}
	s.Invalidate(featureType, featureID)
	return form, nil
}

func (s *FormService) Detach(ctx context.Context, id int64) (*models.CustomForm, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.FeatureID != nil {
		s.Invalidate(form.FeatureType, *form.FeatureID)
	}
	form.FeatureType = ""
	form.FeatureID = nil
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// Delete removes a form and its cache entry.
func (s *FormService) Delete(ctx context.Context, id int64) (int64, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		var nfe *repositories.NotFoundError
		if errors.As(err, &nfe) {
			return 0, nil
		}
		return 0, err
	}

	affected, err := s.forms.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if form.FeatureID != nil {
		s.Invalidate(form.FeatureType, *form.FeatureID)
	}
	return affected, nil
}
