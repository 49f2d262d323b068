// Package memstore keeps every repository in process memory. It backs the
// test suites and `serve --memory`; each read returns copies so callers
// can never mutate stored records in place.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"benigna-backend/domain"
	"benigna-backend/entities"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]*entities.User
	userOrder    []string
	institutions map[string]*entities.Institution
	instOrder    []string
	donations    map[string]*entities.Donation
	donOrder     []string
	ratings      map[string]*entities.Rating
	ratingOrder  []string
	categories   map[string]*entities.Category
	catOrder     []string
}

func New() *Store {
	return &Store{
		users:        make(map[string]*entities.User),
		institutions: make(map[string]*entities.Institution),
		donations:    make(map[string]*entities.Donation),
		ratings:      make(map[string]*entities.Rating),
		categories:   make(map[string]*entities.Category),
	}
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}

// Users

func (s *Store) RegisterUser(ctx context.Context, user *entities.User, institution *entities.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUniqueLocked(user); err != nil {
		return err
	}
	id := user.ID.String()
	s.users[id] = cloneUser(user)
	s.userOrder = append(s.userOrder, id)
	if institution != nil {
		s.saveInstitutionLocked(institution)
	}
	return nil
}

func (s *Store) checkUniqueLocked(user *entities.User) error {
	for _, u := range s.users {
		if u.ID == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if user.CPF != "" && u.CPF == user.CPF {
			return domain.ErrCPFAlreadyExists
		}
		if user.CNPJ != "" && u.CNPJ == user.CNPJ {
			return domain.ErrCNPJAlreadyExists
		}
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := user.ID.String()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[id] = cloneUser(user)
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) findUser(match func(*entities.User) bool) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.findUser(func(u *entities.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) GetUserByCPF(ctx context.Context, cpf string) (*entities.User, error) {
	return s.findUser(func(u *entities.User) bool { return cpf != "" && u.CPF == cpf })
}

func (s *Store) GetUserByCNPJ(ctx context.Context, cnpj string) (*entities.User, error) {
	return s.findUser(func(u *entities.User) bool { return cnpj != "" && u.CNPJ == cnpj })
}

func (s *Store) GetUsers(ctx context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entities.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil
}

// Institutions

func (s *Store) GetInstitutions(ctx context.Context) ([]*entities.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	institutions := make([]*entities.Institution, 0, len(s.instOrder))
	for _, id := range s.instOrder {
		institutions = append(institutions, cloneInstitution(s.institutions[id]))
	}
	return institutions, nil
}

func (s *Store) GetInstitutionByID(ctx context.Context, id string) (*entities.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.institutions[id]
	if !ok {
		return nil, domain.ErrInstitutionNotFound
	}
	return cloneInstitution(inst), nil
}

func (s *Store) SaveInstitution(ctx context.Context, institution *entities.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveInstitutionLocked(institution)
	return nil
}

func (s *Store) saveInstitutionLocked(institution *entities.Institution) {
	id := institution.ID.String()
	if _, ok := s.institutions[id]; !ok {
		s.instOrder = append(s.instOrder, id)
	}
	s.institutions[id] = cloneInstitution(institution)
}

// Donations

func (s *Store) listDonations(match func(*entities.Donation) bool) []*entities.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	donations := make([]*entities.Donation, 0)
	for i := len(s.donOrder) - 1; i >= 0; i-- {
		if d := s.donations[s.donOrder[i]]; match(d) {
			donations = append(donations, cloneDonation(d))
		}
	}
	return donations
}

// GetDonations returns donations newest first.
func (s *Store) GetDonations(ctx context.Context) ([]*entities.Donation, error) {
	return s.listDonations(func(*entities.Donation) bool { return true }), nil
}

func (s *Store) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.donations[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	return cloneDonation(d), nil
}

func (s *Store) GetDonationsByDonor(ctx context.Context, donorID string) ([]*entities.Donation, error) {
	return s.listDonations(func(d *entities.Donation) bool { return d.DonorID.String() == donorID }), nil
}

// GetDonationsByInstitution returns the institution's donations ordered by
// scheduled date.
func (s *Store) GetDonationsByInstitution(ctx context.Context, institutionID string) ([]*entities.Donation, error) {
	donations := s.listDonations(func(d *entities.Donation) bool {
		return d.InstitutionID != nil && d.InstitutionID.String() == institutionID
	})
	sort.SliceStable(donations, func(i, j int) bool {
		a, b := donations[i].ScheduledDate, donations[j].ScheduledDate
		if a == nil || b == nil {
			return a != nil
		}
		return a.Before(*b)
	})
	return donations, nil
}

func (s *Store) SaveDonation(ctx context.Context, donation *entities.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := donation.ID.String()
	if _, ok := s.donations[id]; !ok {
		s.donOrder = append(s.donOrder, id)
	}
	s.donations[id] = cloneDonation(donation)
	return nil
}

func (s *Store) DeleteDonation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.donations[id]; !ok {
		return domain.ErrDonationNotFound
	}
	delete(s.donations, id)
	s.donOrder = removeID(s.donOrder, id)
	return nil
}

// Ratings

func (s *Store) GetRatings(ctx context.Context) ([]*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]*entities.Rating, 0, len(s.ratingOrder))
	for _, id := range s.ratingOrder {
		r := *s.ratings[id]
		ratings = append(ratings, &r)
	}
	return ratings, nil
}

// GetRatingsByInstitution returns newest first.
func (s *Store) GetRatingsByInstitution(ctx context.Context, institutionID string) ([]*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ratingsForLocked(institutionID), nil
}

func (s *Store) ratingsForLocked(institutionID string) []*entities.Rating {
	ratings := make([]*entities.Rating, 0)
	for i := len(s.ratingOrder) - 1; i >= 0; i-- {
		r := s.ratings[s.ratingOrder[i]]
		if r.InstitutionID.String() == institutionID {
			c := *r
			ratings = append(ratings, &c)
		}
	}
	return ratings
}

func (s *Store) GetRatingByDonation(ctx context.Context, donationID string) (*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.ratings {
		if r.DonationID.String() == donationID {
			c := *r
			return &c, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

// SaveRating stores the rating and recomputes its institution's mean and
// count under the same lock.
func (s *Store) SaveRating(ctx context.Context, rating *entities.Rating) (*entities.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instID := rating.InstitutionID.String()
	inst, ok := s.institutions[instID]
	if !ok {
		return nil, domain.ErrInstitutionNotFound
	}
	for _, r := range s.ratings {
		if r.DonationID == rating.DonationID {
			return nil, domain.ErrAlreadyRated
		}
	}

	id := rating.ID.String()
	c := *rating
	s.ratings[id] = &c
	s.ratingOrder = append(s.ratingOrder, id)

	inst.ApplyRatings(s.ratingsForLocked(instID))
	return cloneInstitution(inst), nil
}

// Categories

func (s *Store) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*entities.Category, 0, len(s.catOrder))
	for _, id := range s.catOrder {
		categories = append(categories, cloneCategory(s.categories[id]))
	}
	return categories, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (s *Store) CreateCategory(ctx context.Context, category *entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return domain.ErrCategoryAlreadyExists
		}
	}
	id := category.ID.String()
	s.categories[id] = cloneCategory(category)
	s.catOrder = append(s.catOrder, id)
	return nil
}

func (s *Store) CreateSubcategory(ctx context.Context, subcategory *entities.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[subcategory.CategoryID.String()]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	for _, sub := range c.Subcategories {
		if strings.EqualFold(sub.Name, subcategory.Name) {
			return domain.ErrSubcategoryExists
		}
	}
	sub := *subcategory
	c.Subcategories = append(c.Subcategories, &sub)
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(s.categories, id)
	s.catOrder = removeID(s.catOrder, id)
	return nil
}
