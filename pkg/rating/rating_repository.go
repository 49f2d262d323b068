package rating

import (
	"context"
	"errors"

	"benigna-backend/domain"
	"benigna-backend/entities"

	"gorm.io/gorm"
)

type (
	RatingRepository interface {
		GetRatings(ctx context.Context) ([]*entities.Rating, error)
		GetRatingsByInstitution(ctx context.Context, institutionID string) ([]*entities.Rating, error)
		GetRatingByDonation(ctx context.Context, donationID string) (*entities.Rating, error)
		// SaveRating appends rating and recomputes the institution's mean
		// and count in the same unit of work, returning the institution.
		SaveRating(ctx context.Context, rating *entities.Rating) (*entities.Institution, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetRatings(ctx context.Context) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetRatingsByInstitution(ctx context.Context, institutionID string) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetRatingByDonation(ctx context.Context, donationID string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) SaveRating(ctx context.Context, rating *entities.Rating) (*entities.Institution, error) {
	var institution entities.Institution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", rating.InstitutionID).First(&institution).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInstitutionNotFound
			}
			return err
		}

		if err := tx.Create(rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRated
			}
			return err
		}

		var ratings []*entities.Rating
		if err := tx.Where("institution_id = ?", rating.InstitutionID).Find(&ratings).Error; err != nil {
			return err
		}
		institution.ApplyRatings(ratings)

		return tx.Model(&entities.Institution{}).
			Where("id = ?", institution.ID).
			Updates(map[string]interface{}{
				"rating":        institution.Rating,
				"total_ratings": institution.TotalRatings,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &institution, nil
}
