package institution

import (
	"context"
	"errors"

	"benigna-backend/domain"
	"benigna-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	InstitutionRepository interface {
		GetInstitutions(ctx context.Context) ([]*entities.Institution, error)
		GetInstitutionByID(ctx context.Context, id string) (*entities.Institution, error)
		SaveInstitution(ctx context.Context, institution *entities.Institution) error
	}

	institutionRepository struct {
		db *gorm.DB
	}
)

func NewInstitutionRepository(db *gorm.DB) InstitutionRepository {
	return &institutionRepository{db: db}
}

func (r *institutionRepository) GetInstitutions(ctx context.Context) ([]*entities.Institution, error) {
	var institutions []*entities.Institution
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

func (r *institutionRepository) GetInstitutionByID(ctx context.Context, id string) (*entities.Institution, error) {
	var institution entities.Institution
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&institution).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInstitutionNotFound
		}
		return nil, err
	}
	return &institution, nil
}

// SaveInstitution inserts the institution or replaces every column of an
// existing row with the same ID.
func (r *institutionRepository) SaveInstitution(ctx context.Context, institution *entities.Institution) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(institution).Error
}
