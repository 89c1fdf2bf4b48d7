package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

// GatheringService orchestrates gathering CRUD and membership on top of the
// repository.
type GatheringService struct {
	gatheringRepo *repository.GatheringRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewGatheringService(gatheringRepo *repository.GatheringRepository, logger *zap.Logger) *GatheringService {
	return &GatheringService{
		gatheringRepo: gatheringRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Create builds a gathering with a fresh id and a join code that is unique
// among existing gatherings. The owner, when present, auto-joins as the sole
// initial participant.
func (s *GatheringService) Create(ownerEmail string, req models.GatheringRequest) (*models.Gathering, error) {
	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	reminder := req.Reminder
	if reminder == "" {
		reminder = models.ReminderNone
	}

	g := &models.Gathering{
		ID:       uuid.NewString(),
		Code:     code,
		Name:     req.Name,
		Category: req.Category,
		Date:     req.Date,
		Location: req.Location,
		LocationData: models.LocationData{
			Address: req.Location,
			Lat:     req.Lat,
			Lng:     req.Lng,
		},
		Reminder:     reminder,
		CreatedBy:    ownerEmail,
		CreatedAt:    s.now().UTC(),
		Participants: []string{},
		Tasks:        []models.Task{},
	}
	if ownerEmail != "" {
		g.Participants = []string{ownerEmail}
	}

	if err := s.gatheringRepo.Create(g); err != nil {
		return nil, err
	}

	s.logger.Info("gathering created",
		zap.String("id", g.ID),
		zap.String("code", g.Code),
		zap.String("createdBy", ownerEmail),
	)
	return g, nil
}

// Update merges the supplied fields onto the gathering. Identity fields (id,
// code, createdBy), participants and tasks cannot be changed through this
// path.
func (s *GatheringService) Update(id string, req models.UpdateGatheringRequest) (*models.Gathering, error) {
	g, err := s.gatheringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.Date != nil {
		g.Date = *req.Date
	}
	if req.Location != nil {
		g.Location = *req.Location
		g.LocationData.Address = *req.Location
	}
	if req.Lat != nil {
		g.LocationData.Lat = *req.Lat
	}
	if req.Lng != nil {
		g.LocationData.Lng = *req.Lng
	}
	if req.Reminder != nil {
		g.Reminder = *req.Reminder
	}

	if err := s.gatheringRepo.Save(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes the gathering and its tasks; absent ids are a no-op.
func (s *GatheringService) Delete(id string) error {
	if err := s.gatheringRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("gathering deleted", zap.String("id", id))
	return nil
}

func (s *GatheringService) Get(id string) (*models.Gathering, error) {
	return s.gatheringRepo.GetByID(id)
}

func (s *GatheringService) GetByCode(code string) (*models.Gathering, error) {
	return s.gatheringRepo.GetByCode(code)
}

func (s *GatheringService) Join(id, email string) (*models.Gathering, error) {
	g, err := s.gatheringRepo.Join(id, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("participant joined", zap.String("gathering", id), zap.String("email", email))
	return g, nil
}

// JoinByCode backs both the join-code form and the shareable-link flow.
func (s *GatheringService) JoinByCode(code, email string) (*models.Gathering, error) {
	g, err := s.gatheringRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return s.Join(g.ID, email)
}

func (s *GatheringService) Leave(id, email string) (*models.Gathering, error) {
	g, err := s.gatheringRepo.Leave(id, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("participant left", zap.String("gathering", id), zap.String("email", email))
	return g, nil
}

func (s *GatheringService) List(filter models.GatheringFilter) ([]models.Gathering, error) {
	return s.gatheringRepo.List(filter)
}

// uniqueCode retries generation until the code is free. Collisions on a
// 7-character alphanumeric code are rare; the loop makes them impossible
// instead of merely unlikely.
func (s *GatheringService) uniqueCode() (string, error) {
	for {
		code := utils.GenerateJoinCode()
		exists, err := s.gatheringRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
