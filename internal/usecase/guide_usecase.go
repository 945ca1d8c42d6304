package usecase

import (
	"context"

	"neptrip-backend/internal/converter"
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type GuideUsecase interface {
	ListGuides(ctx context.Context) (*dto.GuideListResponse, error)
	GetGuide(ctx context.Context, guideID uuid.UUID) (*dto.GuideResponse, error)
	CreateGuide(ctx context.Context, req *dto.CreateGuideRequest) (*dto.UserResponse, error)
	UpdateGuideProfile(ctx context.Context, req *dto.UpdateGuideProfileRequest) (*dto.UserResponse, error)
	DeleteGuide(ctx context.Context, guideID uuid.UUID) error
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
}

type guideUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.GuideProfileRepository
	bookingRepo repository.BookingRepository
}

func NewGuideUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.GuideProfileRepository,
	bookingRepo repository.BookingRepository,
) GuideUsecase {
	return &guideUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		bookingRepo: bookingRepo,
	}
}

// ListGuides returns the guide directory. The average rating and review
// count are projected from rated bookings on every read; at this scale the
// on-demand computation is cheaper than keeping a denormalized copy honest.
func (u *guideUsecase) ListGuides(ctx context.Context) (*dto.GuideListResponse, error) {
	guides, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RoleGuide)
	if err != nil {
		u.log.Warnf("Failed to list guides: %+v", err)
		return nil, err
	}

	responses := make([]dto.GuideResponse, 0, len(guides))
	for i := range guides {
		avg, count, err := u.bookingRepo.RatingSummary(u.db.WithContext(ctx), guides[i].ID)
		if err != nil {
			u.log.Warnf("Failed to compute rating for guide %s: %+v", guides[i].ID, err)
			return nil, err
		}
		responses = append(responses, *converter.GuideToResponse(&guides[i], avg, count))
	}

	return &dto.GuideListResponse{Guides: responses, Total: len(responses)}, nil
}

func (u *guideUsecase) GetGuide(ctx context.Context, guideID uuid.UUID) (*dto.GuideResponse, error) {
	guide, err := u.userRepo.FindByID(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to find guide %s: %+v", guideID, err)
		return nil, err
	}
	if guide == nil || !guide.IsGuide() {
		return nil, ErrGuideNotFound
	}

	avg, count, err := u.bookingRepo.RatingSummary(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to compute rating for guide %s: %+v", guideID, err)
		return nil, err
	}

	return converter.GuideToResponse(guide, avg, count), nil
}

// CreateGuide creates a guide account with its profile. Admin only.
func (u *guideUsecase) CreateGuide(ctx context.Context, req *dto.CreateGuideRequest) (*dto.UserResponse, error) {
	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Role:     entity.RoleGuide,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create guide account: %+v", err)
		return nil, err
	}

	profile := &entity.GuideProfile{
		UserID:     user.ID,
		Experience: req.Experience,
		Languages:  req.Languages,
	}
	if err := u.profileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create guide profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.GuideProfile = profile
	return converter.UserToResponse(user), nil
}

// UpdateGuideProfile lets the acting guide edit their own qualifications
// and payment-collection QR reference (an opaque blob-store URL).
func (u *guideUsecase) UpdateGuideProfile(ctx context.Context, req *dto.UpdateGuideProfileRequest) (*dto.UserResponse, error) {
	guideID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrIdentityMissing
	}

	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to find guide profile %s: %+v", guideID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrGuideNotFound
	}

	if req.Experience != "" {
		profile.Experience = req.Experience
	}
	if req.Languages != "" {
		profile.Languages = req.Languages
	}
	if req.QRImageURL != "" {
		profile.QRImageURL = req.QRImageURL
	}

	if err := u.profileRepo.Update(u.db.WithContext(ctx), profile); err != nil {
		u.log.Warnf("Failed to update guide profile %s: %+v", guideID, err)
		return nil, err
	}

	return u.currentUserResponse(ctx, guideID)
}

func (u *guideUsecase) currentUserResponse(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

// DeleteGuide removes a guide account. Bookings are never physically
// deleted: the guide's active bookings are force-declined first, then the
// profile and account go, all in one transaction.
func (u *guideUsecase) DeleteGuide(ctx context.Context, guideID uuid.UUID) error {
	guide, err := u.userRepo.FindByID(u.db.WithContext(ctx), guideID)
	if err != nil {
		u.log.Warnf("Failed to find guide %s: %+v", guideID, err)
		return err
	}
	if guide == nil || !guide.IsGuide() {
		return ErrGuideNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	declined, err := u.bookingRepo.DeclineActiveByGuideID(tx, guideID)
	if err != nil {
		u.log.Warnf("Failed to decline bookings of guide %s: %+v", guideID, err)
		return err
	}

	if err := u.profileRepo.Delete(tx, guideID); err != nil {
		u.log.Warnf("Failed to delete guide profile %s: %+v", guideID, err)
		return err
	}
	if err := u.userRepo.Delete(tx, guideID); err != nil {
		u.log.Warnf("Failed to delete guide account %s: %+v", guideID, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Guide deleted: id=%s, declined %d active bookings", guideID, declined)
	return nil
}

// ListUsers returns every account for the admin screen
func (u *guideUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}
