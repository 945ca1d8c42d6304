package usecase

import (
	"context"
	"errors"

	"neptrip-backend/internal/converter"
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDestinationNotFound = errors.New("destination not found")

type DestinationUsecase interface {
	CreateDestination(ctx context.Context, req *dto.CreateDestinationRequest) (*dto.DestinationResponse, error)
	GetAllDestinations(ctx context.Context) (*dto.DestinationListResponse, error)
	GetDestination(ctx context.Context, id uuid.UUID) (*dto.DestinationResponse, error)
}

type destinationUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	destinationRepo repository.DestinationRepository
}

func NewDestinationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	destinationRepo repository.DestinationRepository,
) DestinationUsecase {
	return &destinationUsecase{
		db:              db,
		log:             log,
		destinationRepo: destinationRepo,
	}
}

func (u *destinationUsecase) CreateDestination(ctx context.Context, req *dto.CreateDestinationRequest) (*dto.DestinationResponse, error) {
	destination := &entity.Destination{
		Name:            req.Name,
		Location:        req.Location,
		Altitude:        req.Altitude,
		Rating:          req.Rating,
		Review:          req.Review,
		Distance:        req.Distance,
		TimeToComplete:  req.TimeToComplete,
		DifficultyLevel: entity.DifficultyLevel(req.DifficultyLevel),
		EcoCulturalInfo: req.EcoCulturalInfo,
		GearChecklist:   entity.StringList(req.GearChecklist),
		Images:          entity.StringList(req.Images),
	}

	if err := u.destinationRepo.Create(u.db.WithContext(ctx), destination); err != nil {
		u.log.Warnf("Failed to create destination: %+v", err)
		return nil, err
	}

	return converter.DestinationToResponse(destination), nil
}

func (u *destinationUsecase) GetAllDestinations(ctx context.Context) (*dto.DestinationListResponse, error) {
	destinations, err := u.destinationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list destinations: %+v", err)
		return nil, err
	}

	return &dto.DestinationListResponse{
		Destinations: converter.DestinationsToResponses(destinations),
		Total:        len(destinations),
	}, nil
}

func (u *destinationUsecase) GetDestination(ctx context.Context, id uuid.UUID) (*dto.DestinationResponse, error) {
	destination, err := u.destinationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find destination %s: %+v", id, err)
		return nil, err
	}
	if destination == nil {
		return nil, ErrDestinationNotFound
	}

	return converter.DestinationToResponse(destination), nil
}
