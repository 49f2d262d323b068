package rating

import (
	"context"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/pkg/donation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	RatingService interface {
		RateDonation(ctx context.Context, req domain.RatingRequest, userID string) (*domain.RatingResult, error)
		GetInstitutionRatings(ctx context.Context, institutionID string) ([]*domain.RatingResponse, error)
	}

	ratingService struct {
		ratingRepository   RatingRepository
		donationRepository donation.DonationRepository
		logger             *zap.Logger
		now                func() time.Time
	}
)

func NewRatingService(ratingRepository RatingRepository, donationRepository donation.DonationRepository, logger *zap.Logger) RatingService {
	return &ratingService{
		ratingRepository:   ratingRepository,
		donationRepository: donationRepository,
		logger:             logger,
		now:                time.Now,
	}
}

// RateDonation lets a donor rate the institution that received one of
// their delivered donations. Each donation can be rated once.
func (s *ratingService) RateDonation(ctx context.Context, req domain.RatingRequest, userID string) (*domain.RatingResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	d, err := s.donationRepository.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}
	if d.DonorID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	if d.Status != entities.DonationStatusDelivered || d.InstitutionID == nil {
		return nil, domain.ErrDonationNotDelivered
	}

	now := s.now()
	rating := &entities.Rating{
		ID:            uuid.New(),
		DonorID:       d.DonorID,
		InstitutionID: *d.InstitutionID,
		DonationID:    d.ID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Timestamp:     entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	inst, err := s.ratingRepository.SaveRating(ctx, rating)
	if err != nil {
		return nil, err
	}

	s.logger.Info("institution rated",
		zap.String("institution_id", inst.ID.String()),
		zap.Int("rating", rating.Rating),
		zap.Float64("mean", inst.Rating),
		zap.Int("total", inst.TotalRatings))

	return &domain.RatingResult{
		Rating:            ToRatingResponse(rating),
		InstitutionRating: inst.Rating,
		TotalRatings:      inst.TotalRatings,
	}, nil
}

func (s *ratingService) GetInstitutionRatings(ctx context.Context, institutionID string) ([]*domain.RatingResponse, error) {
	ratings, err := s.ratingRepository.GetRatingsByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}
	response := make([]*domain.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		response = append(response, ToRatingResponse(r))
	}
	return response, nil
}

func ToRatingResponse(r *entities.Rating) *domain.RatingResponse {
	return &domain.RatingResponse{
		ID:            r.ID.String(),
		DonorID:       r.DonorID.String(),
		InstitutionID: r.InstitutionID.String(),
		DonationID:    r.DonationID.String(),
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}
