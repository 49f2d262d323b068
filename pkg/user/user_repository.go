package user

import (
	"context"
	"errors"

	"benigna-backend/domain"
	"benigna-backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		// RegisterUser creates the account and, for institutions, its
		// institution profile atomically.
		RegisterUser(ctx context.Context, user *entities.User, institution *entities.Institution) error
		UpdateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByCPF(ctx context.Context, cpf string) (*entities.User, error)
		GetUserByCNPJ(ctx context.Context, cnpj string) (*entities.User, error)
		GetUsers(ctx context.Context) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) RegisterUser(ctx context.Context, user *entities.User, institution *entities.Institution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEmailAlreadyExists
			}
			return err
		}
		if institution == nil {
			return nil
		}
		return tx.Create(institution).Error
	})
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":          user.Name,
		"phone":         user.Phone,
		"password":      user.Password,
		"profile_image": user.ProfileImage,
		"updated_at":    user.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) first(ctx context.Context, query string, arg string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userRepository) GetUserByCPF(ctx context.Context, cpf string) (*entities.User, error) {
	return r.first(ctx, "cpf = ?", cpf)
}

func (r *userRepository) GetUserByCNPJ(ctx context.Context, cnpj string) (*entities.User, error) {
	return r.first(ctx, "cnpj = ?", cnpj)
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
