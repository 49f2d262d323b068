package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetUser    = "user retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetUser    = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update user"

	ErrEmailAlreadyExists = errors.New("Email já cadastrado")
	ErrCPFAlreadyExists   = errors.New("CPF já cadastrado")
	ErrCNPJAlreadyExists  = errors.New("CNPJ já cadastrado")
	ErrEmailNotFound      = errors.New("Email não encontrado")
	ErrWrongPassword      = errors.New("Senha incorreta")
	ErrUserNotFound       = errors.New("user not found")
	ErrCPFRequired        = errors.New("CPF is required for donors")
	ErrCNPJRequired       = errors.New("CNPJ is required for institutions")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrHashPassword       = errors.New("failed to hash password")
)

type (
	AddressRequest struct {
		Street       string   `json:"street" validate:"required"`
		Number       string   `json:"number" validate:"required"`
		Complement   string   `json:"complement"`
		Neighborhood string   `json:"neighborhood" validate:"required"`
		City         string   `json:"city" validate:"required"`
		State        string   `json:"state" validate:"required,len=2"`
		ZipCode      string   `json:"zip_code" validate:"required,zipcode_br"`
		Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	}

	WorkingHoursRequest struct {
		DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
		IsOpen    bool   `json:"is_open"`
		OpenTime  string `json:"open_time" validate:"omitempty,hhmm"`
		CloseTime string `json:"close_time" validate:"omitempty,hhmm"`
	}

	UserRegisterRequest struct {
		Name     string `json:"name" validate:"required,min=2"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,password"`
		Phone    string `json:"phone" validate:"required,phone_br"`
		Type     string `json:"type" validate:"required,oneof=donor institution"`
		CPF      string `json:"cpf" validate:"omitempty,cpf"`
		CNPJ     string `json:"cnpj" validate:"omitempty,cnpj"`

		Description        string                `json:"description"`
		Address            *AddressRequest       `json:"address" validate:"omitempty"`
		WorkingHours       []WorkingHoursRequest `json:"working_hours" validate:"omitempty,dive"`
		AcceptedCategories []string              `json:"accepted_categories"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserLoginResponse struct {
		Token string        `json:"token"`
		Role  string        `json:"role"`
		User  *UserResponse `json:"user"`
	}

	UserUpdateRequest struct {
		Name         string                `json:"name" form:"name" validate:"omitempty,min=2"`
		Phone        string                `json:"phone" form:"phone" validate:"omitempty,phone_br"`
		Password     string                `json:"password" form:"password" validate:"omitempty,password"`
		ProfileImage *multipart.FileHeader `json:"-" form:"profile_image"`
	}

	UserResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Phone        string    `json:"phone"`
		CPF          string    `json:"cpf,omitempty"`
		CNPJ         string    `json:"cnpj,omitempty"`
		Type         string    `json:"type"`
		ProfileImage string    `json:"profile_image,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
)
