package repository

import (
	"errors"
	"sort"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

const gatheringsKey = "lammatna_gatherings"

// GatheringRepository persists the gathering collection, join codes and
// participant membership included. Tasks live inside their gathering record
// and are saved with it.
type GatheringRepository struct {
	store store.Store
}

func NewGatheringRepository(s store.Store) *GatheringRepository {
	return &GatheringRepository{store: s}
}

func (r *GatheringRepository) GetAll() ([]models.Gathering, error) {
	var gatherings []models.Gathering
	if err := store.LoadCollection(r.store, gatheringsKey, &gatherings); err != nil {
		return nil, err
	}
	return gatherings, nil
}

func (r *GatheringRepository) SaveAll(gatherings []models.Gathering) error {
	return store.SaveCollection(r.store, gatheringsKey, gatherings)
}

// Create appends the gathering and persists immediately.
func (r *GatheringRepository) Create(g *models.Gathering) error {
	gatherings, err := r.GetAll()
	if err != nil {
		return err
	}
	gatherings = append(gatherings, *g)
	return r.SaveAll(gatherings)
}

func (r *GatheringRepository) GetByID(id string) (*models.Gathering, error) {
	gatherings, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range gatherings {
		if gatherings[i].ID == id {
			return &gatherings[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *GatheringRepository) GetByCode(code string) (*models.Gathering, error) {
	gatherings, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range gatherings {
		if gatherings[i].Code == code {
			return &gatherings[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *GatheringRepository) CodeExists(code string) (bool, error) {
	_, err := r.GetByCode(code)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save writes back a gathering that was previously loaded. Returns
// ErrNotFound if the record has since disappeared.
func (r *GatheringRepository) Save(g *models.Gathering) error {
	gatherings, err := r.GetAll()
	if err != nil {
		return err
	}
	for i := range gatherings {
		if gatherings[i].ID == g.ID {
			gatherings[i] = *g
			return r.SaveAll(gatherings)
		}
	}
	return models.ErrNotFound
}

// Delete removes the gathering and, with it, all its tasks. Deleting an
// absent id is a no-op.
func (r *GatheringRepository) Delete(id string) error {
	gatherings, err := r.GetAll()
	if err != nil {
		return err
	}
	kept := gatherings[:0]
	for _, g := range gatherings {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return r.SaveAll(kept)
}

// Join adds email to the gathering's participants if absent.
func (r *GatheringRepository) Join(id, email string) (*models.Gathering, error) {
	g, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g.AddParticipant(email) {
		if err := r.Save(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Leave removes email from the participants and clears that participant's
// task assignments in the same write.
func (r *GatheringRepository) Leave(id, email string) (*models.Gathering, error) {
	g, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g.RemoveParticipant(email) {
		if err := r.Save(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// List returns the gatherings matching filter, sorted ascending by event
// date.
func (r *GatheringRepository) List(filter models.GatheringFilter) ([]models.Gathering, error) {
	gatherings, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Gathering, 0, len(gatherings))
	for _, g := range gatherings {
		if filter.Matches(g) {
			matched = append(matched, g)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	return matched, nil
}
