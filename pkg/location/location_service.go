package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"benigna-backend/domain"
	"benigna-backend/internal/utils"
	"benigna-backend/pkg/geo"

	"go.uber.org/zap"
)

const (
	RequestTimeout = 10 * time.Second
	userAgent      = "benigna-backend/1.0"
)

type (
	LocationService interface {
		Geocode(ctx context.Context, address string) (*domain.LocationData, error)
		ReverseGeocode(ctx context.Context, coordinate geo.Coordinate) (*domain.LocationData, error)
		LookupZipCode(ctx context.Context, zipCode string) (*domain.ZipCodeAddress, error)
	}

	locationService struct {
		nominatimURL string
		viaCEPURL    string
		client       *http.Client
		cache        Cache
		logger       *zap.Logger
	}

	nominatimAddress struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	}

	nominatimPlace struct {
		Lat         string           `json:"lat"`
		Lon         string           `json:"lon"`
		DisplayName string           `json:"display_name"`
		Address     nominatimAddress `json:"address"`
		Error       string           `json:"error"`
	}

	viaCEPResponse struct {
		CEP         string `json:"cep"`
		Logradouro  string `json:"logradouro"`
		Complemento string `json:"complemento"`
		Bairro      string `json:"bairro"`
		Localidade  string `json:"localidade"`
		UF          string `json:"uf"`
		Erro        any    `json:"erro"`
	}
)

// NewLocationService talks to a Nominatim instance for addresses and to
// ViaCEP for Brazilian postal codes. Every call is a single attempt bounded
// by RequestTimeout.
func NewLocationService(nominatimURL, viaCEPURL string, cache Cache, logger *zap.Logger) LocationService {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &locationService{
		nominatimURL: strings.TrimRight(nominatimURL, "/"),
		viaCEPURL:    strings.TrimRight(viaCEPURL, "/"),
		client:       &http.Client{Timeout: RequestTimeout},
		cache:        cache,
		logger:       logger,
	}
}

func (s *locationService) Geocode(ctx context.Context, address string) (*domain.LocationData, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.ErrAddressNotFound
	}

	key := "geo:search:" + strings.ToLower(address)
	var cached domain.LocationData
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("countrycodes", "br")
	query.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := s.getJSON(ctx, s.nominatimURL+"/search?"+query.Encode(), &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, domain.ErrAddressNotFound
	}

	location, err := places[0].toLocation()
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, location)
	return location, nil
}

func (s *locationService) ReverseGeocode(ctx context.Context, coordinate geo.Coordinate) (*domain.LocationData, error) {
	if !coordinate.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}

	lat := strconv.FormatFloat(coordinate.Latitude, 'f', 6, 64)
	lon := strconv.FormatFloat(coordinate.Longitude, 'f', 6, 64)
	key := "geo:reverse:" + lat + ":" + lon
	var cached domain.LocationData
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", lat)
	query.Set("lon", lon)
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	var place nominatimPlace
	if err := s.getJSON(ctx, s.nominatimURL+"/reverse?"+query.Encode(), &place); err != nil {
		return nil, err
	}
	if place.Error != "" {
		return nil, domain.ErrAddressNotFound
	}

	location := place.location()
	// the requested point is what the caller asked about
	location.Latitude = coordinate.Latitude
	location.Longitude = coordinate.Longitude
	s.toCache(ctx, key, location)
	return location, nil
}

func (s *locationService) LookupZipCode(ctx context.Context, zipCode string) (*domain.ZipCodeAddress, error) {
	digits := utils.OnlyDigits(zipCode)
	if len(digits) != 8 {
		return nil, domain.ErrZipCodeLength
	}

	key := "geo:cep:" + digits
	var cached domain.ZipCodeAddress
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	var resp viaCEPResponse
	if err := s.getJSON(ctx, s.viaCEPURL+"/ws/"+digits+"/json/", &resp); err != nil {
		return nil, err
	}
	if resp.notFound() {
		return nil, domain.ErrZipCodeNotFound
	}

	address := &domain.ZipCodeAddress{
		ZipCode:      utils.FormatZipCode(digits),
		Street:       resp.Logradouro,
		Complement:   resp.Complemento,
		Neighborhood: resp.Bairro,
		City:         resp.Localidade,
		State:        resp.UF,
	}
	s.toCache(ctx, key, address)
	return address, nil
}

func (s *locationService) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("location request failed", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Warn("location request rejected",
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("%w: status %d", domain.ErrGeocodingUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrGeocodingUnavailable, err)
	}
	return nil
}

func (s *locationService) fromCache(ctx context.Context, key string, out any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *locationService) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw)
}

func (p nominatimPlace) location() *domain.LocationData {
	city := p.Address.City
	if city == "" {
		city = p.Address.Town
	}
	if city == "" {
		city = p.Address.Village
	}
	return &domain.LocationData{
		Address: p.DisplayName,
		City:    city,
		State:   p.Address.State,
	}
}

func (p nominatimPlace) toLocation() (*domain.LocationData, error) {
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	if err := errors.Join(errLat, errLon); err != nil {
		return nil, fmt.Errorf("%w: bad coordinates: %v", domain.ErrGeocodingUnavailable, err)
	}
	location := p.location()
	location.Latitude = lat
	location.Longitude = lon
	return location, nil
}

// notFound handles both spellings ViaCEP has used for its error flag.
func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return r.CEP == ""
}
