package service

import (
	"context"

	"neptrip-backend/config"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService creates the default admin and guide accounts during process
// initialization. Seeding is idempotent: each role is created only when no
// account with that role exists yet.
type SeedService struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              config.SeedConfig
	userRepo         repository.UserRepository
	guideProfileRepo repository.GuideProfileRepository
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SeedConfig,
	userRepo repository.UserRepository,
	guideProfileRepo repository.GuideProfileRepository,
) *SeedService {
	return &SeedService{
		db:               db,
		log:              log,
		cfg:              cfg,
		userRepo:         userRepo,
		guideProfileRepo: guideProfileRepo,
	}
}

// Run executes the seeding pass. Invoked once from bootstrap.
func (s *SeedService) Run(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	if err := s.seedRole(db, entity.RoleAdmin, "Admin User", s.cfg.AdminEmail, s.cfg.AdminPassword); err != nil {
		return err
	}
	return s.seedRole(db, entity.RoleGuide, "Guide User", s.cfg.GuideEmail, s.cfg.GuidePassword)
}

func (s *SeedService) seedRole(db *gorm.DB, role, fullName, email, password string) error {
	existing, err := s.userRepo.FindFirstByRole(db, role)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if email == "" || password == "" {
		s.log.Warnf("No seed credentials configured for role %s, skipping", role)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Role:     role,
		Email:    email,
		Password: string(hashedPassword),
		FullName: fullName,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return err
	}

	if role == entity.RoleGuide {
		if err := s.guideProfileRepo.Create(db, &entity.GuideProfile{UserID: user.ID}); err != nil {
			return err
		}
	}

	s.log.Infof("Default %s account created: %s", role, email)
	return nil
}
