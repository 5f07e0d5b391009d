// Package api is the REST persistence service the admin console and the
// booking form talk to. Each collection gets the same list/get/create/
// update/delete surface over a store.Store.
package api

import (
	"context"
	"curoo/internal/repository"
	"curoo/internal/store"
	"curoo/pkg/events"
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"curoo/pkg/validation"
	"errors"
	"fmt"
	"strings"

	apperrors "curoo/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type Service[T repository.Record, D repository.Draft[T], P repository.Patch[T]] struct {
	resource      string
	store         store.Store[T, D, P]
	validate      *validator.Validate
	sanitizeDraft func(*D)
	sanitizePatch func(*P)
	publisher     events.Publisher
	eventPrefix   string
	log           *logger.Logger
}

type (
	DoctorService      = Service[model.Doctor, model.DoctorDraft, model.DoctorUpdate]
	ServiceService     = Service[model.Service, model.ServiceDraft, model.ServiceUpdate]
	AppointmentService = Service[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]
)

func NewService[T repository.Record, D repository.Draft[T], P repository.Patch[T]](resource string, s store.Store[T, D, P], log *logger.Logger) *Service[T, D, P] {
	return &Service[T, D, P]{
		resource:  resource,
		store:     s,
		validate:  validation.New(),
		publisher: events.Nop{},
		log:       log.With("resource", resource),
	}
}

// WithSanitizers sets the normalization applied to request bodies before
// validation.
func (s *Service[T, D, P]) WithSanitizers(draft func(*D), patch func(*P)) *Service[T, D, P] {
	s.sanitizeDraft = draft
	s.sanitizePatch = patch
	return s
}

// WithEvents publishes <prefix>.created, <prefix>.updated and <prefix>.deleted.
func (s *Service[T, D, P]) WithEvents(publisher events.Publisher, prefix string) *Service[T, D, P] {
	s.publisher = publisher
	s.eventPrefix = prefix
	return s
}

func (s *Service[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	var zero T
	if s.sanitizeDraft != nil {
		s.sanitizeDraft(&draft)
	}

	if err := validation.Struct(s.validate, draft); err != nil {
		s.log.Warn("Create validation failed", "error", err)
		return zero, apperrors.Validation(fmt.Sprintf("%s validation failed", s.resource), err)
	}

	record, err := s.store.Create(ctx, draft)
	if err != nil {
		return zero, s.translate(err, "")
	}

	s.log.Info("Record created", "id", record.Key())
	s.publish(ctx, "created", record.Key(), record)
	return record, nil
}

func (s *Service[T, D, P]) Get(ctx context.Context, id string) (T, error) {
	record, err := s.store.Get(ctx, id)
	return record, s.translate(err, id)
}

func (s *Service[T, D, P]) List(ctx context.Context, q store.Query) ([]T, error) {
	records, err := s.store.List(ctx, q)
	return records, s.translate(err, "")
}

func (s *Service[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	if s.sanitizePatch != nil {
		s.sanitizePatch(&patch)
	}

	if err := validation.Struct(s.validate, patch); err != nil {
		s.log.Warn("Update validation failed", "id", id, "error", err)
		return zero, apperrors.Validation(fmt.Sprintf("%s validation failed", s.resource), err)
	}

	record, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return zero, s.translate(err, id)
	}

	s.log.Info("Record updated", "id", id)
	s.publish(ctx, "updated", id, record)
	return record, nil
}

func (s *Service[T, D, P]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.translate(err, id)
	}

	s.log.Info("Record deleted", "id", id)
	s.publish(ctx, "deleted", id, nil)
	return nil
}

func (s *Service[T, D, P]) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service[T, D, P]) translate(err error, id string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFoundWithID(s.resource, id)
	case errors.Is(err, store.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", strings.ToLower(s.resource)))
	case errors.As(err, &appErr):
		return appErr
	default:
		s.log.Error("Store operation failed", "id", id, "error", err)
		return apperrors.Internal(fmt.Sprintf("Error processing %s", strings.ToLower(s.resource)), err)
	}
}

func (s *Service[T, D, P]) publish(ctx context.Context, action, key string, payload any) {
	if s.eventPrefix == "" {
		return
	}
	event := events.New(s.eventPrefix+"."+action, key, payload)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish event", "event_type", event.Type, "key", key, "error", err)
	}
}
