package institution

import (
	"context"
	"fmt"
	"strings"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/internal/utils"
	"benigna-backend/pkg/geo"
	"benigna-backend/pkg/schedule"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultCoordinate (São Paulo city centre) is used when an address can
// neither be supplied nor geocoded.
var DefaultCoordinate = geo.Coordinate{Latitude: -23.5505, Longitude: -46.6333}

type (
	RatingReader interface {
		GetRatingsByInstitution(ctx context.Context, institutionID string) ([]*entities.Rating, error)
	}

	Geocoder interface {
		Geocode(ctx context.Context, address string) (*domain.LocationData, error)
	}

	InstitutionService interface {
		GetInstitutions(ctx context.Context, req domain.InstitutionFilterRequest) ([]*domain.InstitutionResponse, error)
		GetNearbyInstitutions(ctx context.Context, req domain.NearbyRequest) ([]*domain.InstitutionResponse, error)
		GetInstitutionProfile(ctx context.Context, id string, origin *geo.Coordinate) (*domain.InstitutionProfileResponse, error)
		GetDeliverySlots(ctx context.Context, id string, date string) (*domain.SlotsResponse, error)
		GetOpenDays(ctx context.Context, id string, count int) ([]string, error)
		UpdateInstitution(ctx context.Context, userID string, req domain.InstitutionUpdateRequest) (*domain.InstitutionResponse, error)
		VerifyInstitution(ctx context.Context, id string) (*domain.InstitutionResponse, error)
	}

	institutionService struct {
		institutionRepository InstitutionRepository
		ratingReader          RatingReader
		geocoder              Geocoder
		location              *time.Location
		logger                *zap.Logger
		now                   func() time.Time
	}
)

func NewInstitutionService(
	institutionRepository InstitutionRepository,
	ratingReader RatingReader,
	geocoder Geocoder,
	location *time.Location,
	logger *zap.Logger,
) InstitutionService {
	if location == nil {
		location = time.UTC
	}
	return &institutionService{
		institutionRepository: institutionRepository,
		ratingReader:          ratingReader,
		geocoder:              geocoder,
		location:              location,
		logger:                logger,
		now:                   time.Now,
	}
}

func (s *institutionService) localNow() time.Time {
	return s.now().In(s.location)
}

func (s *institutionService) GetInstitutions(ctx context.Context, req domain.InstitutionFilterRequest) ([]*domain.InstitutionResponse, error) {
	origin, err := originFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	catalogue, err := s.institutionRepository.GetInstitutions(ctx)
	if err != nil {
		return nil, err
	}

	results := Apply(catalogue, FilterOptions{
		SearchQuery: req.SearchQuery,
		Category:    req.Category,
		MaxDistance: req.MaxDistance,
		MinRating:   req.MinRating,
		OpenNow:     req.OpenNow,
	}, origin, s.localNow())

	response := make([]*domain.InstitutionResponse, 0, len(results))
	for _, r := range results {
		response = append(response, ToResultResponse(r))
	}
	return response, nil
}

func (s *institutionService) GetNearbyInstitutions(ctx context.Context, req domain.NearbyRequest) ([]*domain.InstitutionResponse, error) {
	center := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if !center.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}
	if req.Radius <= 0 || req.Radius > 50 {
		return nil, domain.ErrInvalidRadius
	}

	catalogue, err := s.institutionRepository.GetInstitutions(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Institution, len(catalogue))
	points := make([]geo.Point, 0, len(catalogue))
	for _, inst := range catalogue {
		id := inst.ID.String()
		byID[id] = inst
		points = append(points, geo.Point{ID: id, Coordinate: inst.Address.Coordinate()})
	}

	matches, err := geo.NewIndex(points).Nearby(center, req.Radius)
	if err != nil {
		return nil, err
	}

	now := s.localNow()
	response := make([]*domain.InstitutionResponse, 0, len(matches))
	for _, m := range matches {
		inst := byID[m.ID]
		response = append(response, ToResultResponse(Result{
			Institution:   inst,
			Distance:      m.Distance,
			HasDistance:   true,
			DistanceLabel: geo.FormatDistance(m.Distance),
			OpenNow:       schedule.IsOpenAt(inst.WorkingHours, now),
		}))
	}
	return response, nil
}

func (s *institutionService) GetInstitutionProfile(ctx context.Context, id string, origin *geo.Coordinate) (*domain.InstitutionProfileResponse, error) {
	if origin != nil && !origin.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}

	inst, err := s.institutionRepository.GetInstitutionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingReader.GetRatingsByInstitution(ctx, id)
	if err != nil {
		return nil, err
	}

	r := Result{
		Institution: inst,
		OpenNow:     schedule.IsOpenAt(inst.WorkingHours, s.localNow()),
	}
	if origin != nil {
		r.Distance = geo.Distance(*origin, inst.Address.Coordinate())
		r.HasDistance = true
		r.DistanceLabel = geo.FormatDistance(r.Distance)
	}

	ratingResponses := make([]*domain.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		ratingResponses = append(ratingResponses, &domain.RatingResponse{
			ID:            rating.ID.String(),
			DonorID:       rating.DonorID.String(),
			InstitutionID: rating.InstitutionID.String(),
			DonationID:    rating.DonationID.String(),
			Rating:        rating.Rating,
			Comment:       rating.Comment,
			CreatedAt:     rating.CreatedAt,
		})
	}

	return &domain.InstitutionProfileResponse{
		Institution: ToResultResponse(r),
		Ratings:     ratingResponses,
	}, nil
}

func (s *institutionService) GetDeliverySlots(ctx context.Context, id string, date string) (*domain.SlotsResponse, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.location)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	inst, err := s.institutionRepository.GetInstitutionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.SlotsResponse{
		Date:  day.Format(dateLayout),
		Slots: schedule.SlotsOn(inst.WorkingHours, day),
	}, nil
}

func (s *institutionService) GetOpenDays(ctx context.Context, id string, count int) ([]string, error) {
	inst, err := s.institutionRepository.GetInstitutionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	days, err := schedule.UpcomingOpenDays(inst.WorkingHours, s.localNow(), count)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

func (s *institutionService) UpdateInstitution(ctx context.Context, userID string, req domain.InstitutionUpdateRequest) (*domain.InstitutionResponse, error) {
	inst, err := s.institutionRepository.GetInstitutionByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		inst.Description = *req.Description
	}
	if req.WorkingHours != nil {
		hours := WorkingHoursFrom(req.WorkingHours)
		if err := schedule.ValidateWeek(hours); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		inst.WorkingHours = hours
	}
	if req.AcceptedCategories != nil {
		inst.AcceptedCategories = req.AcceptedCategories
	}
	if req.Address != nil {
		inst.Address = ResolveAddress(ctx, s.geocoder, s.logger, *req.Address)
	}
	inst.UpdatedAt = s.now()

	if err := s.institutionRepository.SaveInstitution(ctx, inst); err != nil {
		return nil, err
	}

	return ToResultResponse(Result{
		Institution: inst,
		OpenNow:     schedule.IsOpenAt(inst.WorkingHours, s.localNow()),
	}), nil
}

func (s *institutionService) VerifyInstitution(ctx context.Context, id string) (*domain.InstitutionResponse, error) {
	inst, err := s.institutionRepository.GetInstitutionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inst.Verified = true
	inst.UpdatedAt = s.now()
	if err := s.institutionRepository.SaveInstitution(ctx, inst); err != nil {
		return nil, err
	}

	s.logger.Info("institution verified", zap.String("institution_id", id))
	return ToResultResponse(Result{
		Institution: inst,
		OpenNow:     schedule.IsOpenAt(inst.WorkingHours, s.localNow()),
	}), nil
}

// ResolveAddress turns an address request into a stored address. Client
// coordinates win; otherwise the address text is geocoded, and if that
// fails too the default coordinate is used.
func ResolveAddress(ctx context.Context, geocoder Geocoder, logger *zap.Logger, req domain.AddressRequest) entities.Address {
	address := entities.Address{
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Complement:   strings.TrimSpace(req.Complement),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		ZipCode:      utils.OnlyDigits(req.ZipCode),
		Latitude:     DefaultCoordinate.Latitude,
		Longitude:    DefaultCoordinate.Longitude,
	}

	if req.Latitude != nil && req.Longitude != nil {
		address.Latitude = *req.Latitude
		address.Longitude = *req.Longitude
		return address
	}
	if geocoder == nil {
		return address
	}

	query := fmt.Sprintf("%s, %s, %s, %s, %s",
		address.Street, address.Number, address.Neighborhood, address.City, address.State)
	located, err := geocoder.Geocode(ctx, query)
	if err != nil {
		logger.Warn("geocoding address failed, using default coordinate",
			zap.String("address", query), zap.Error(err))
		return address
	}
	address.Latitude = located.Latitude
	address.Longitude = located.Longitude
	return address
}

func WorkingHoursFrom(req []domain.WorkingHoursRequest) []entities.WorkingHours {
	hours := make([]entities.WorkingHours, 0, len(req))
	for _, h := range req {
		hours = append(hours, entities.WorkingHours{
			DayOfWeek: h.DayOfWeek,
			IsOpen:    h.IsOpen,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}
	return hours
}

func ToResultResponse(r Result) *domain.InstitutionResponse {
	inst := r.Institution
	hours := make([]domain.WorkingHoursResponse, 0, len(inst.WorkingHours))
	for _, h := range inst.WorkingHours {
		hours = append(hours, domain.WorkingHoursResponse{
			DayOfWeek: h.DayOfWeek,
			IsOpen:    h.IsOpen,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}
	categories := inst.AcceptedCategories
	if categories == nil {
		categories = []string{}
	}

	response := &domain.InstitutionResponse{
		ID:           inst.ID.String(),
		Name:         inst.Name,
		Email:        inst.Email,
		Phone:        utils.FormatPhone(inst.Phone),
		Description:  inst.Description,
		ProfileImage: inst.ProfileImage,
		Address: domain.AddressResponse{
			Street:       inst.Address.Street,
			Number:       inst.Address.Number,
			Complement:   inst.Address.Complement,
			Neighborhood: inst.Address.Neighborhood,
			City:         inst.Address.City,
			State:        inst.Address.State,
			ZipCode:      utils.FormatZipCode(inst.Address.ZipCode),
			Latitude:     inst.Address.Latitude,
			Longitude:    inst.Address.Longitude,
		},
		WorkingHours:       hours,
		AcceptedCategories: categories,
		Rating:             inst.Rating,
		TotalRatings:       inst.TotalRatings,
		Verified:           inst.Verified,
		OpenNow:            r.OpenNow,
		CreatedAt:          inst.CreatedAt,
	}
	if r.HasDistance {
		d := r.Distance
		response.Distance = &d
		response.DistanceLabel = r.DistanceLabel
	}
	return response
}

func originFrom(lat, lon *float64) (*geo.Coordinate, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, domain.ErrInvalidCoordinates
	}
	c := geo.Coordinate{Latitude: *lat, Longitude: *lon}
	if !c.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}
	return &c, nil
}
