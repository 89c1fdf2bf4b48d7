package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/pkg/hash"
)

// seedSampleData loads a demo account and gathering into an empty store, like
// the browser prototype did on first visit. Password for the demo account:
// "password123".
func seedSampleData(userRepo *repository.UserRepository, gatheringService *service.GatheringService, logger *zap.Logger) error {
	users, err := userRepo.GetAll()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	user := &models.User{
		Username:     "Sara",
		Email:        "sara@example.com",
		PasswordHash: hash.Digest("password123"),
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(user); err != nil {
		return err
	}

	g, err := gatheringService.Create(user.Email, models.GatheringRequest{
		Name:     "Family BBQ",
		Category: "family",
		Date:     time.Now().AddDate(0, 0, 7),
		Location: "Riverside Park",
		Lat:      24.7136,
		Lng:      46.6753,
		Reminder: models.Reminder24h,
	})
	if err != nil {
		return err
	}

	logger.Info("seeded sample data",
		zap.String("user", user.Email),
		zap.String("gathering", g.ID),
		zap.String("code", g.Code),
	)
	return nil
}
