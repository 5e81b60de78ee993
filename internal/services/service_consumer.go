package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"igram/dto"
	"igram/internal/common"
	"igram/internal/logging"
	"igram/internal/models"
)

var consumerNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

type ConsumerService struct {
	consumers ConsumerStore
	log       logging.Logger
	now       func() time.Time
}

func NewConsumerService(consumers ConsumerStore, log logging.Logger) *ConsumerService {
	return &ConsumerService{consumers: consumers, log: log, now: time.Now}
}

// Register signs a consumer in by name. An exact match is a returning
// consumer; a match that differs only by case is rejected so that
// confusable names never coexist; otherwise a new record is created.
// created reports whether a record was inserted.
func (s *ConsumerService) Register(ctx context.Context, name string) (resp dto.RegisterConsumerResponse, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return resp, false, common.Validation("Name is required")
	}
	if !consumerNamePattern.MatchString(name) {
		return resp, false, common.Validation("Name can only contain letters and spaces")
	}

	existing, err := s.consumers.FindByName(ctx, name)
	switch {
	case err == nil:
		return dto.RegisterConsumerResponse{
			Message:    "Welcome back!",
			ConsumerID: existing.ID.Hex(),
			Name:       existing.Name,
		}, false, nil
	case !errors.Is(err, common.ErrNotFound):
		return resp, false, err
	}

	_, err = s.consumers.FindByNameFold(ctx, name)
	switch {
	case err == nil:
		return resp, false, common.Conflict("Name must be unique and its case sensitive. A similar name already exists.")
	case !errors.Is(err, common.ErrNotFound):
		return resp, false, err
	}

	now := s.now().UTC()
	c := &models.Consumer{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.consumers.Create(ctx, c); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return resp, false, common.Conflict("This name is already taken. Please choose another name.")
		}
		return resp, false, err
	}

	s.log.Info(ctx, "consumer registered", "consumer_id", c.ID.Hex())
	return dto.RegisterConsumerResponse{
		Message:    "Consumer registered successfully",
		ConsumerID: c.ID.Hex(),
		Name:       c.Name,
	}, true, nil
}
