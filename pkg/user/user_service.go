package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/internal/utils"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/jwt"
	"benigna-backend/pkg/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		UpdateUser(ctx context.Context, userID string, req domain.UserUpdateRequest) (*domain.UserResponse, error)
	}

	userService struct {
		userRepository        UserRepository
		institutionRepository institution.InstitutionRepository
		jwtService            jwt.JWTService
		storage               storage.FileStorage
		geocoder              institution.Geocoder
		logger                *zap.Logger
	}
)

func NewUserService(
	userRepository UserRepository,
	institutionRepository institution.InstitutionRepository,
	jwtService jwt.JWTService,
	fileStorage storage.FileStorage,
	geocoder institution.Geocoder,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepository:        userRepository,
		institutionRepository: institutionRepository,
		jwtService:            jwtService,
		storage:               fileStorage,
		geocoder:              geocoder,
		logger:                logger,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Phone:     utils.OnlyDigits(req.Phone),
		Type:      req.Type,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	var inst *entities.Institution
	switch req.Type {
	case entities.UserTypeDonor:
		cpf := utils.OnlyDigits(req.CPF)
		if cpf == "" {
			return nil, domain.ErrCPFRequired
		}
		if err := s.ensureUnique(s.userRepository.GetUserByCPF(ctx, cpf)); err != nil {
			return nil, mapDuplicate(err, domain.ErrCPFAlreadyExists)
		}
		user.CPF = cpf
	case entities.UserTypeInstitution:
		cnpj := utils.OnlyDigits(req.CNPJ)
		if cnpj == "" {
			return nil, domain.ErrCNPJRequired
		}
		if err := s.ensureUnique(s.userRepository.GetUserByCNPJ(ctx, cnpj)); err != nil {
			return nil, mapDuplicate(err, domain.ErrCNPJAlreadyExists)
		}
		user.CNPJ = cnpj

		var err error
		inst, err = s.newInstitution(ctx, user, req)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidUserType
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrHashPassword
	}
	user.Password = string(hashed)

	if err := s.userRepository.RegisterUser(ctx, user, inst); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("type", user.Type))
	return toUserResponse(user), nil
}

var errDuplicate = errors.New("duplicate")

// ensureUnique turns the result of a lookup into errDuplicate when a user
// was found, nil when none was, or the lookup's own failure.
func (s *userService) ensureUnique(_ *entities.User, err error) error {
	if err == nil {
		return errDuplicate
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}

func mapDuplicate(err error, duplicate error) error {
	if errors.Is(err, errDuplicate) {
		return duplicate
	}
	return err
}

func (s *userService) newInstitution(ctx context.Context, user *entities.User, req domain.UserRegisterRequest) (*entities.Institution, error) {
	if req.Address == nil {
		return nil, fmt.Errorf("%w: address is required for institutions", domain.ErrValidation)
	}

	hours := schedule.DefaultWeek()
	if len(req.WorkingHours) > 0 {
		hours = institution.WorkingHoursFrom(req.WorkingHours)
	}
	if err := schedule.ValidateWeek(hours); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	categories := req.AcceptedCategories
	if categories == nil {
		categories = []string{}
	}

	return &entities.Institution{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		Description:        strings.TrimSpace(req.Description),
		Address:            institution.ResolveAddress(ctx, s.geocoder, s.logger, *req.Address),
		WorkingHours:       hours,
		AcceptedCategories: categories,
		Timestamp:          user.Timestamp,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrWrongPassword
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Type)
	if err != nil {
		return nil, err
	}

	return &domain.UserLoginResponse{
		Token: token,
		Role:  user.Type,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser changes account details. For institutions the name, phone and
// picture are mirrored onto the institution profile.
func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UserUpdateRequest) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		user.Phone = utils.OnlyDigits(req.Phone)
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.ErrHashPassword
		}
		user.Password = string(hashed)
	}
	if req.ProfileImage != nil {
		objectKey, err := s.storage.UploadFile(user.ID.String(), req.ProfileImage, "profiles", storage.AllowImage...)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = s.storage.GetPublicLinkKey(objectKey)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if user.Type == entities.UserTypeInstitution {
		inst, err := s.institutionRepository.GetInstitutionByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		inst.Name = user.Name
		inst.Phone = user.Phone
		inst.ProfileImage = user.ProfileImage
		inst.UpdatedAt = user.UpdatedAt
		if err := s.institutionRepository.SaveInstitution(ctx, inst); err != nil {
			return nil, err
		}
	}

	return toUserResponse(user), nil
}

func toUserResponse(u *entities.User) *domain.UserResponse {
	response := &domain.UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Phone:        utils.FormatPhone(u.Phone),
		Type:         u.Type,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.CPF != "" {
		response.CPF = utils.FormatCPF(u.CPF)
	}
	if u.CNPJ != "" {
		response.CNPJ = utils.FormatCNPJ(u.CNPJ)
	}
	return response
}
