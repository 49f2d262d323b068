// Package seed loads the default category catalogue, the admin account and
// a handful of sample institutions. Running it twice is harmless.
package seed

import (
	"context"
	"errors"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/pkg/category"
	"benigna-backend/pkg/schedule"
	"benigna-backend/pkg/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail    = "admin@benigna.com"
	AdminPassword = "admin123"
)

type categorySeed struct {
	name          string
	icon          string
	subcategories []string
}

var categories = []categorySeed{
	{"Roupas", "👕", []string{"Camisetas", "Calças", "Casacos", "Calçados", "Roupas infantis"}},
	{"Alimentos", "🥫", []string{"Não perecíveis", "Cestas básicas", "Leite e derivados"}},
	{"Brinquedos", "🧸", []string{"Pelúcias", "Jogos", "Livros infantis"}},
	{"Móveis", "🪑", []string{"Camas", "Mesas", "Cadeiras", "Armários"}},
	{"Higiene", "🧼", []string{"Higiene pessoal", "Fraldas", "Produtos de limpeza"}},
	{"Materiais escolares", "📚", []string{"Cadernos", "Mochilas", "Livros"}},
	{"Pet", "🐾", []string{"Ração", "Acessórios", "Medicamentos"}},
}

type institutionSeed struct {
	name         string
	email        string
	cnpj         string
	phone        string
	description  string
	address      entities.Address
	categories   []string
	saturdayOpen bool
}

var institutions = []institutionSeed{
	{
		name:        "Casa de Acolhida Esperança",
		email:       "contato@casaesperanca.org.br",
		cnpj:        "11222333000181",
		phone:       "1133334444",
		description: "Acolhimento de famílias em situação de rua no centro de São Paulo.",
		address: entities.Address{
			Street: "Rua Augusta", Number: "1200", Neighborhood: "Consolação",
			City: "São Paulo", State: "SP", ZipCode: "01304001",
			Latitude: -23.5565, Longitude: -46.6623,
		},
		categories: []string{"Roupas", "Alimentos", "Higiene"},
	},
	{
		name:        "Instituto Crescer",
		email:       "doacoes@institutocrescer.org.br",
		cnpj:        "04252011000110",
		phone:       "11987654321",
		description: "Projetos educacionais para crianças da zona leste.",
		address: entities.Address{
			Street: "Rua da Mooca", Number: "450", Neighborhood: "Mooca",
			City: "São Paulo", State: "SP", ZipCode: "03103000",
			Latitude: -23.5505, Longitude: -46.6000,
		},
		categories:   []string{"Brinquedos", "Materiais escolares", "Roupas"},
		saturdayOpen: true,
	},
	{
		name:        "Abrigo Patinhas",
		email:       "ola@abrigopatinhas.org.br",
		cnpj:        "60746948000112",
		phone:       "1130305050",
		description: "Resgate e adoção de cães e gatos.",
		address: entities.Address{
			Street: "Avenida Pompéia", Number: "800", Neighborhood: "Pompeia",
			City: "São Paulo", State: "SP", ZipCode: "05023000",
			Latitude: -23.5322, Longitude: -46.6869,
		},
		categories: []string{"Pet", "Higiene"},
	},
}

func Seed(ctx context.Context, users user.UserRepository, categoryRepository category.CategoryRepository, logger *zap.Logger) error {
	now := time.Now()

	for _, c := range categories {
		if err := seedCategory(ctx, categoryRepository, c, now); err != nil {
			return err
		}
	}

	if err := seedUser(ctx, users, &entities.User{
		ID:    uuid.New(),
		Name:  "Administrador",
		Email: AdminEmail,
		Type:  entities.UserTypeAdmin,
	}, nil, now); err != nil {
		return err
	}

	for _, inst := range institutions {
		account := &entities.User{
			ID:    uuid.New(),
			Name:  inst.name,
			Email: inst.email,
			Phone: inst.phone,
			CNPJ:  inst.cnpj,
			Type:  entities.UserTypeInstitution,
		}
		hours := schedule.DefaultWeek()
		if inst.saturdayOpen {
			hours[6] = entities.WorkingHours{DayOfWeek: 6, IsOpen: true, OpenTime: "09:00", CloseTime: "13:00"}
		}
		profile := &entities.Institution{
			ID:                 account.ID,
			Name:               inst.name,
			Email:              inst.email,
			Phone:              inst.phone,
			Description:        inst.description,
			Address:            inst.address,
			WorkingHours:       hours,
			AcceptedCategories: inst.categories,
			Verified:           true,
			Timestamp:          entities.Timestamp{CreatedAt: now, UpdatedAt: now},
		}
		if err := seedUser(ctx, users, account, profile, now); err != nil {
			return err
		}
	}

	logger.Info("seed complete",
		zap.Int("categories", len(categories)),
		zap.Int("institutions", len(institutions)))
	return nil
}

func seedCategory(ctx context.Context, repo category.CategoryRepository, c categorySeed, now time.Time) error {
	cat := &entities.Category{
		ID:        uuid.New(),
		Name:      c.name,
		Icon:      c.icon,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	err := repo.CreateCategory(ctx, cat)
	if errors.Is(err, domain.ErrCategoryAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, name := range c.subcategories {
		err := repo.CreateSubcategory(ctx, &entities.Subcategory{
			ID:         uuid.New(),
			CategoryID: cat.ID,
			Name:       name,
			Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil && !errors.Is(err, domain.ErrSubcategoryExists) {
			return err
		}
	}
	return nil
}

// seedUser registers account unless its email is taken. Seeded accounts
// share AdminPassword.
func seedUser(ctx context.Context, users user.UserRepository, account *entities.User, profile *entities.Institution, now time.Time) error {
	if _, err := users.GetUserByEmail(ctx, account.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hash)
	account.Timestamp = entities.Timestamp{CreatedAt: now, UpdatedAt: now}

	err = users.RegisterUser(ctx, account, profile)
	if errors.Is(err, domain.ErrEmailAlreadyExists) || errors.Is(err, domain.ErrCNPJAlreadyExists) {
		return nil
	}
	return err
}
