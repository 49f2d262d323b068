package config

import (
	"benigna-backend/pkg/category"
	"benigna-backend/pkg/donation"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/memstore"
	"benigna-backend/pkg/rating"
	"benigna-backend/pkg/user"

	"gorm.io/gorm"
)

type Repositories struct {
	Users        user.UserRepository
	Institutions institution.InstitutionRepository
	Donations    donation.DonationRepository
	Ratings      rating.RatingRepository
	Categories   category.CategoryRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:        user.NewUserRepository(db),
		Institutions: institution.NewInstitutionRepository(db),
		Donations:    donation.NewDonationRepository(db),
		Ratings:      rating.NewRatingRepository(db),
		Categories:   category.NewCategoryRepository(db),
	}
}

// NewMemoryRepositories backs every repository with one in-process store.
func NewMemoryRepositories() Repositories {
	store := memstore.New()
	return Repositories{
		Users:        store,
		Institutions: store,
		Donations:    store,
		Ratings:      store,
		Categories:   store,
	}
}
