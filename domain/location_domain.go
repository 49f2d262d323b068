package domain

import "errors"

var (
	MessageSuccessGeocode = "address located successfully"
	MessageSuccessZipCode = "zip code found"
	MessageFailedGeocode  = "failed to locate address"
	MessageFailedZipCode  = "failed to look up zip code"

	ErrAddressNotFound      = errors.New("Endereço não encontrado")
	ErrZipCodeNotFound      = errors.New("CEP não encontrado")
	ErrZipCodeLength        = errors.New("CEP deve ter 8 dígitos")
	ErrGeocodingUnavailable = errors.New("geocoding service unavailable")
)

type (
	GeocodeRequest struct {
		Address string `query:"address" validate:"required,min=3"`
	}

	ReverseGeocodeRequest struct {
		Latitude  float64 `query:"latitude" validate:"latitude"`
		Longitude float64 `query:"longitude" validate:"longitude"`
	}

	LocationData struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   string  `json:"address,omitempty"`
		City      string  `json:"city,omitempty"`
		State     string  `json:"state,omitempty"`
	}

	ZipCodeAddress struct {
		ZipCode      string `json:"zip_code"`
		Street       string `json:"street"`
		Complement   string `json:"complement,omitempty"`
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
		State        string `json:"state"`
	}
)
