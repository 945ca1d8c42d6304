package usecase

import (
	"context"
	"io"
	"testing"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/internal/domain/repository"
	gormrepo "neptrip-backend/internal/repository"
	"neptrip-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Schema mirrors the postgres migrations, including the partial unique
// indexes that close the booking races. SQLite supports partial indexes,
// so the storage-level guarantees hold in tests too.
var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'user',
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		full_name TEXT NOT NULL,
		avatar TEXT,
		phone TEXT,
		address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE guide_profiles (
		user_id TEXT PRIMARY KEY,
		experience TEXT,
		languages TEXT,
		trek_count INTEGER NOT NULL DEFAULT 0,
		qr_image_url TEXT
	)`,
	`CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		guide_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT NOT NULL,
		people_count INTEGER NOT NULL,
		destination TEXT NOT NULL,
		trek_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT,
		payment_status TEXT NOT NULL DEFAULT 'unpaid',
		payment_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		user_payment_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		guide_payment_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		rating INTEGER,
		review TEXT,
		schema_version INTEGER NOT NULL DEFAULT 2,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE UNIQUE INDEX uniq_active_booking_per_user
		ON bookings (user_id)
		WHERE status IN ('pending', 'accepted')`,
	`CREATE UNIQUE INDEX uniq_active_booking_per_guide_date
		ON bookings (guide_id, trek_date)
		WHERE status IN ('pending', 'accepted')`,
	`CREATE TABLE destinations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		altitude REAL NOT NULL,
		rating INTEGER NOT NULL,
		review TEXT NOT NULL,
		distance REAL NOT NULL,
		time_to_complete TEXT NOT NULL,
		difficulty_level TEXT NOT NULL,
		eco_cultural_info TEXT NOT NULL,
		gear_checklist TEXT,
		images TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recipient_id TEXT NOT NULL,
		message TEXT NOT NULL,
		metadata TEXT,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// In-memory sqlite is per-connection; keep the pool at one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}
	return db
}

type testEnv struct {
	db           *gorm.DB
	bookings     BookingUsecase
	guideSide    GuideBookingUsecase
	guides       GuideUsecase
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	profileRepo  repository.GuideProfileRepository
	notification *service.NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	bookingRepo := gormrepo.NewBookingRepository()
	userRepo := gormrepo.NewUserRepository()
	profileRepo := gormrepo.NewGuideProfileRepository()
	notificationRepo := gormrepo.NewNotificationRepository()
	notification := service.NewNotificationService(db, log, notificationRepo)

	return &testEnv{
		db:           db,
		bookings:     NewBookingUsecase(db, log, bookingRepo, userRepo, profileRepo, notification),
		guideSide:    NewGuideBookingUsecase(db, log, bookingRepo, profileRepo, notification, decimal.NewFromInt(1500)),
		guides:       NewGuideUsecase(db, log, userRepo, profileRepo, bookingRepo),
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		notification: notification,
	}
}

func (e *testEnv) createUser(t *testing.T, role, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Role:     role,
		Email:    email,
		Password: "hashed",
		FullName: "Test " + role,
	}
	if err := e.userRepo.Create(e.db, user); err != nil {
		t.Fatalf("failed to create %s: %v", role, err)
	}
	if role == entity.RoleGuide {
		if err := e.profileRepo.Create(e.db, &entity.GuideProfile{UserID: user.ID}); err != nil {
			t.Fatalf("failed to create guide profile: %v", err)
		}
	}
	return user
}

func ctxFor(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func bookingRequest(guideID uuid.UUID, date string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		FullName:      "Asha Tamang",
		Email:         "asha@example.com",
		Address:       "Thamel, Kathmandu",
		Phone:         "+9779800000001",
		PeopleCount:   2,
		Destination:   "Annapurna Base Camp",
		Date:          date,
		PaymentMethod: "cash",
		GuideID:       guideID.String(),
	}
}

func respondRequest(status string) *dto.RespondBookingRequest {
	return &dto.RespondBookingRequest{Status: status}
}

func ratingRequest(rating int, review string) *dto.RateBookingRequest {
	return &dto.RateBookingRequest{Rating: rating, Review: review}
}

func (e *testEnv) mustBooking(t *testing.T, id uuid.UUID) *entity.Booking {
	t.Helper()

	booking, err := e.bookingRepo.FindByID(e.db, id)
	if err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if booking == nil {
		t.Fatalf("booking %s not found", id)
	}
	return booking
}
