package statistics

import (
	"context"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/pkg/donation"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/rating"
	"benigna-backend/pkg/user"

	"go.uber.org/zap"
)

type (
	StatisticsService interface {
		GetAdminStatistics(ctx context.Context) (*domain.AdminStatistics, error)
		GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonorStatistics, error)
		GetInstitutionStatistics(ctx context.Context, institutionID string) (*domain.InstitutionStatistics, error)
	}

	statisticsService struct {
		userRepository        user.UserRepository
		institutionRepository institution.InstitutionRepository
		donationRepository    donation.DonationRepository
		ratingRepository      rating.RatingRepository
		logger                *zap.Logger
	}
)

func NewStatisticsService(
	userRepository user.UserRepository,
	institutionRepository institution.InstitutionRepository,
	donationRepository donation.DonationRepository,
	ratingRepository rating.RatingRepository,
	logger *zap.Logger,
) StatisticsService {
	return &statisticsService{
		userRepository:        userRepository,
		institutionRepository: institutionRepository,
		donationRepository:    donationRepository,
		ratingRepository:      ratingRepository,
		logger:                logger,
	}
}

func (s *statisticsService) GetAdminStatistics(ctx context.Context) (*domain.AdminStatistics, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	institutions, err := s.institutionRepository.GetInstitutions(ctx)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepository.GetDonations(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepository.GetRatings(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.AdminStatistics{
		TotalUsers:        len(users),
		TotalInstitutions: len(institutions),
		TotalDonations:    len(donations),
		DonationsByStatus: countByStatus(donations),
		TotalRatings:      len(ratings),
	}
	for _, u := range users {
		if u.Type == entities.UserTypeDonor {
			stats.TotalDonors++
		}
	}
	for _, i := range institutions {
		if i.Verified {
			stats.VerifiedInstitutions++
		}
	}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(ratings))
	}
	return stats, nil
}

func (s *statisticsService) GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonorStatistics, error) {
	donations, err := s.donationRepository.GetDonationsByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	byStatus := countByStatus(donations)
	stats := &domain.DonorStatistics{
		TotalDonations:     len(donations),
		PendingDonations:   byStatus[entities.DonationStatusPending],
		ScheduledDonations: byStatus[entities.DonationStatusScheduled],
		DeliveredDonations: byStatus[entities.DonationStatusDelivered],
		CancelledDonations: byStatus[entities.DonationStatusCancelled],
	}
	for _, d := range donations {
		if d.Status == entities.DonationStatusDelivered {
			stats.TotalItemsDonated += d.Quantity
		}
	}
	return stats, nil
}

func (s *statisticsService) GetInstitutionStatistics(ctx context.Context, institutionID string) (*domain.InstitutionStatistics, error) {
	inst, err := s.institutionRepository.GetInstitutionByID(ctx, institutionID)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepository.GetDonationsByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	stats := &domain.InstitutionStatistics{
		Rating:       inst.Rating,
		TotalRatings: inst.TotalRatings,
	}
	for _, d := range donations {
		switch d.Status {
		case entities.DonationStatusScheduled:
			stats.ScheduledDeliveries++
		case entities.DonationStatusDelivered:
			stats.CompletedDeliveries++
			stats.ItemsReceived += d.Quantity
		}
	}
	return stats, nil
}

func countByStatus(donations []*entities.Donation) map[string]int {
	counts := map[string]int{
		entities.DonationStatusPending:   0,
		entities.DonationStatusScheduled: 0,
		entities.DonationStatusDelivered: 0,
		entities.DonationStatusCancelled: 0,
	}
	for _, d := range donations {
		counts[d.Status]++
	}
	return counts
}
