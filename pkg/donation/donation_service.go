package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/internal/utils"
	"benigna-backend/internal/utils/mailing"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout  = "2006-01-02"
	imageFolder = "donations"
)

type (
	RatingLookup interface {
		GetRatingByDonation(ctx context.Context, donationID string) (*entities.Rating, error)
	}

	DonationService interface {
		CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.DonationResponse, error)
		GetDonorDonations(ctx context.Context, userID string) ([]*domain.DonationResponse, error)
		GetInstitutionDonations(ctx context.Context, institutionID string) ([]*domain.DonationResponse, error)
		GetDonationByID(ctx context.Context, id string, userID string, role string) (*domain.DonationResponse, error)
		ScheduleDelivery(ctx context.Context, id string, req domain.ScheduleDonationRequest, userID string) (*domain.DonationResponse, error)
		ConfirmDelivery(ctx context.Context, id string, institutionID string) (*domain.DonationResponse, error)
		CancelDonation(ctx context.Context, id string, userID string) (*domain.DonationResponse, error)
		DeleteDonation(ctx context.Context, id string, userID string) error
	}

	donationService struct {
		donationRepository    DonationRepository
		institutionRepository institution.InstitutionRepository
		ratingLookup          RatingLookup
		storage               storage.FileStorage
		mailer                mailing.Mailer
		location              *time.Location
		logger                *zap.Logger
		now                   func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	institutionRepository institution.InstitutionRepository,
	ratingLookup RatingLookup,
	fileStorage storage.FileStorage,
	mailer mailing.Mailer,
	location *time.Location,
	logger *zap.Logger,
) DonationService {
	if location == nil {
		location = time.UTC
	}
	return &donationService{
		donationRepository:    donationRepository,
		institutionRepository: institutionRepository,
		ratingLookup:          ratingLookup,
		storage:               fileStorage,
		mailer:                mailer,
		location:              location,
		logger:                logger,
		now:                   time.Now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.DonationResponse, error) {
	donorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if len(req.Images) > domain.MaxDonationImages {
		return nil, domain.ErrTooManyImages
	}
	for _, image := range req.Images {
		if image.Size > domain.MaxDonationImageSize {
			return nil, domain.ErrImageTooLarge
		}
	}

	now := s.now()
	donation := &entities.Donation{
		ID:          uuid.New(),
		DonorID:     donorID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Quantity:    req.Quantity,
		Condition:   req.Condition,
		Images:      []string{},
		Status:      entities.DonationStatusPending,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	for i, image := range req.Images {
		fileName := fmt.Sprintf("%s-%d", donation.ID, i)
		objectKey, err := s.storage.UploadFile(fileName, image, imageFolder, storage.AllowImage...)
		if err != nil {
			return nil, fmt.Errorf("upload image %d: %w", i, err)
		}
		donation.Images = append(donation.Images, s.storage.GetPublicLinkKey(objectKey))
	}

	if err := s.donationRepository.SaveDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.Info("donation created",
		zap.String("donation_id", donation.ID.String()),
		zap.String("donor_id", userID),
		zap.Int("images", len(donation.Images)))
	return s.toResponse(ctx, donation, nil)
}

func (s *donationService) GetDonorDonations(ctx context.Context, userID string) ([]*domain.DonationResponse, error) {
	donations, err := s.donationRepository.GetDonationsByDonor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, donations)
}

func (s *donationService) GetInstitutionDonations(ctx context.Context, institutionID string) ([]*domain.DonationResponse, error) {
	donations, err := s.donationRepository.GetDonationsByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, donations)
}

func (s *donationService) GetDonationByID(ctx context.Context, id string, userID string, role string) (*domain.DonationResponse, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case domain.RoleAdmin:
	case domain.RoleInstitution:
		if donation.InstitutionID == nil || donation.InstitutionID.String() != userID {
			return nil, domain.ErrUnauthorizedDonationAccess
		}
	default:
		if donation.DonorID.String() != userID {
			return nil, domain.ErrUnauthorizedDonationAccess
		}
	}
	return s.toResponse(ctx, donation, nil)
}

func (s *donationService) ScheduleDelivery(ctx context.Context, id string, req domain.ScheduleDonationRequest, userID string) (*domain.DonationResponse, error) {
	donation, err := s.ownedDonation(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(donation.Status, entities.DonationStatusScheduled) {
		return nil, domain.ErrInvalidDonationStatus
	}

	inst, err := s.institutionRepository.GetInstitutionByID(ctx, req.InstitutionID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(dateLayout, req.Date, s.location)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if day.Before(schedule.EarliestDeliveryDate(s.now().In(s.location))) {
		return nil, domain.ErrScheduleDateTooEarly
	}
	if !schedule.HasSlot(inst.WorkingHours, day, req.Time) {
		return nil, domain.ErrSlotUnavailable
	}

	minutes, err := schedule.ParseClock(req.Time)
	if err != nil {
		return nil, domain.ErrSlotUnavailable
	}
	scheduledAt := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, s.location)

	donation.InstitutionID = &inst.ID
	donation.ScheduledDate = &scheduledAt
	donation.Status = entities.DonationStatusScheduled
	donation.UpdatedAt = s.now()
	if err := s.donationRepository.SaveDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.notifyInstitution(inst, donation, scheduledAt, req.Time)
	return s.toResponse(ctx, donation, map[string]*entities.Institution{inst.ID.String(): inst})
}

// notifyInstitution is best effort: a failed mail never undoes the booking.
func (s *donationService) notifyInstitution(inst *entities.Institution, donation *entities.Donation, at time.Time, slot string) {
	body, err := mailing.DeliveryScheduledBody(mailing.DeliveryScheduled{
		Institution: inst.Name,
		Date:        at.Format("02/01/2006"),
		Time:        slot,
		Quantity:    donation.Quantity,
		Category:    donation.Category,
		Subcategory: donation.Subcategory,
		Description: donation.Description,
		AppURL:      utils.GetConfig("APP_URL"),
	})
	if err == nil {
		err = s.mailer.SendMail(inst.Email, "Nova entrega agendada - Benigna", body)
	}
	if err != nil {
		s.logger.Warn("failed to notify institution",
			zap.String("institution_id", inst.ID.String()),
			zap.String("donation_id", donation.ID.String()),
			zap.Error(err))
	}
}

func (s *donationService) ConfirmDelivery(ctx context.Context, id string, institutionID string) (*domain.DonationResponse, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.InstitutionID == nil || donation.InstitutionID.String() != institutionID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	if !CanTransition(donation.Status, entities.DonationStatusDelivered) {
		return nil, domain.ErrInvalidDonationStatus
	}

	now := s.now()
	donation.Status = entities.DonationStatusDelivered
	donation.DeliveredDate = &now
	donation.UpdatedAt = now
	if err := s.donationRepository.SaveDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.Info("delivery confirmed",
		zap.String("donation_id", id),
		zap.String("institution_id", institutionID))
	return s.toResponse(ctx, donation, nil)
}

func (s *donationService) CancelDonation(ctx context.Context, id string, userID string) (*domain.DonationResponse, error) {
	donation, err := s.ownedDonation(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(donation.Status, entities.DonationStatusCancelled) {
		return nil, domain.ErrInvalidDonationStatus
	}

	donation.Status = entities.DonationStatusCancelled
	donation.UpdatedAt = s.now()
	if err := s.donationRepository.SaveDonation(ctx, donation); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, donation, nil)
}

func (s *donationService) DeleteDonation(ctx context.Context, id string, userID string) error {
	if _, err := s.ownedDonation(ctx, id, userID); err != nil {
		return err
	}
	return s.donationRepository.DeleteDonation(ctx, id)
}

func (s *donationService) ownedDonation(ctx context.Context, id string, userID string) (*entities.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.DonorID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	return donation, nil
}

func (s *donationService) toResponses(ctx context.Context, donations []*entities.Donation) ([]*domain.DonationResponse, error) {
	institutions := make(map[string]*entities.Institution)
	response := make([]*domain.DonationResponse, 0, len(donations))
	for _, d := range donations {
		r, err := s.toResponse(ctx, d, institutions)
		if err != nil {
			return nil, err
		}
		response = append(response, r)
	}
	return response, nil
}

// toResponse resolves the institution name through cache, filling it as
// it goes. A nil cache disables caching.
func (s *donationService) toResponse(ctx context.Context, d *entities.Donation, cache map[string]*entities.Institution) (*domain.DonationResponse, error) {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	response := &domain.DonationResponse{
		ID:            d.ID.String(),
		DonorID:       d.DonorID.String(),
		Category:      d.Category,
		Subcategory:   d.Subcategory,
		Description:   d.Description,
		Quantity:      d.Quantity,
		Condition:     d.Condition,
		Images:        images,
		Status:        d.Status,
		ScheduledDate: d.ScheduledDate,
		DeliveredDate: d.DeliveredDate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	if d.InstitutionID != nil {
		id := d.InstitutionID.String()
		response.InstitutionID = id
		inst, ok := cache[id]
		if !ok {
			var err error
			inst, err = s.institutionRepository.GetInstitutionByID(ctx, id)
			if err != nil && !errors.Is(err, domain.ErrInstitutionNotFound) {
				return nil, err
			}
			if cache != nil {
				cache[id] = inst
			}
		}
		if inst != nil {
			response.InstitutionName = inst.Name
		}
	}

	if d.Status == entities.DonationStatusDelivered {
		_, err := s.ratingLookup.GetRatingByDonation(ctx, d.ID.String())
		switch {
		case errors.Is(err, domain.ErrRatingNotFound):
			response.CanRate = true
		case err != nil:
			return nil, err
		}
	}
	return response, nil
}
