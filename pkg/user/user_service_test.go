package user

import (
	"context"
	"errors"
	"testing"

	"benigna-backend/domain"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/jwt"
	"benigna-backend/pkg/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGeocoder struct {
	result *domain.LocationData
	err    error
	calls  []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*domain.LocationData, error) {
	f.calls = append(f.calls, address)
	return f.result, f.err
}

func newService(t *testing.T, geocoder institution.Geocoder) (UserService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	svc := NewUserService(store, store, jwt.NewJWTServiceWithSecret("test"), storage.NewLocalStorage(t.TempDir()), geocoder, zap.NewNop())
	return svc, store
}

func donorRequest() domain.UserRegisterRequest {
	return domain.UserRegisterRequest{
		Name:     "Maria Silva",
		Email:    "Maria@Example.com ",
		Password: "senha123",
		Phone:    "(11) 99999-8888",
		Type:     domain.RoleDonor,
		CPF:      "529.982.247-25",
	}
}

func institutionRequest() domain.UserRegisterRequest {
	return domain.UserRegisterRequest{
		Name:        "Casa Esperança",
		Email:       "contato@casa.org",
		Password:    "senha123",
		Phone:       "1133334444",
		Type:        domain.RoleInstitution,
		CNPJ:        "11.222.333/0001-81",
		Description: "Abrigo",
		Address: &domain.AddressRequest{
			Street:       "Rua Augusta",
			Number:       "100",
			Neighborhood: "Consolação",
			City:         "São Paulo",
			State:        "sp",
			ZipCode:      "01305-000",
		},
		AcceptedCategories: []string{"Roupas"},
	}
}

func TestRegister_Donor(t *testing.T) {
	svc, store := newService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, donorRequest())
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, "529.982.247-25", user.CPF)
	assert.Equal(t, "(11) 99999-8888", user.Phone)

	stored, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "52998224725", stored.CPF)
	assert.NotEqual(t, "senha123", stored.Password)

	institutions, err := store.GetInstitutions(ctx)
	require.NoError(t, err)
	assert.Empty(t, institutions)
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, donorRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, donorRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, "Email já cadastrado", err.Error())

	req := donorRequest()
	req.Email = "outra@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrCPFAlreadyExists)

	_, err = svc.Register(ctx, institutionRequest())
	require.NoError(t, err)

	req = institutionRequest()
	req.Email = "outro@casa.org"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrCNPJAlreadyExists)
}

func TestRegister_RequiresDocument(t *testing.T) {
	svc, _ := newService(t, nil)

	req := donorRequest()
	req.CPF = ""
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCPFRequired)

	req = institutionRequest()
	req.CNPJ = ""
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCNPJRequired)

	req = institutionRequest()
	req.Address = nil
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_InstitutionDefaultsToSaoPaulo(t *testing.T) {
	geocoder := &fakeGeocoder{err: domain.ErrAddressNotFound}
	svc, store := newService(t, geocoder)
	ctx := context.Background()

	user, err := svc.Register(ctx, institutionRequest())
	require.NoError(t, err)
	require.Len(t, geocoder.calls, 1)

	inst, err := store.GetInstitutionByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, institution.DefaultCoordinate, inst.Address.Coordinate())
	assert.Equal(t, "SP", inst.Address.State)
	assert.Equal(t, "01305000", inst.Address.ZipCode)
	assert.Len(t, inst.WorkingHours, 7)
	assert.Equal(t, []string{"Roupas"}, inst.AcceptedCategories)
}

func TestRegister_InstitutionGeocoded(t *testing.T) {
	geocoder := &fakeGeocoder{result: &domain.LocationData{Latitude: -23.55, Longitude: -46.65}}
	svc, store := newService(t, geocoder)
	ctx := context.Background()

	user, err := svc.Register(ctx, institutionRequest())
	require.NoError(t, err)

	inst, err := store.GetInstitutionByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, -23.55, inst.Address.Latitude)
	assert.Equal(t, -46.65, inst.Address.Longitude)
}

func TestRegister_ClientCoordinatesWin(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("should not be called")}
	svc, store := newService(t, geocoder)
	ctx := context.Background()

	lat, lon := -22.9, -43.2
	req := institutionRequest()
	req.Address.Latitude = &lat
	req.Address.Longitude = &lon

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, geocoder.calls)

	inst, err := store.GetInstitutionByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, lat, inst.Address.Latitude)
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, domain.UserLoginRequest{Email: "maria@example.com", Password: "senha123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleDonor, resp.Role)
	assert.Equal(t, registered.ID, resp.User.ID)

	_, err = svc.Login(ctx, domain.UserLoginRequest{Email: "maria@example.com", Password: "errada1"})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	_, err = svc.Login(ctx, domain.UserLoginRequest{Email: "nobody@example.com", Password: "senha123"})
	assert.ErrorIs(t, err, domain.ErrEmailNotFound)
}

func TestUpdateUser_MirrorsInstitution(t *testing.T) {
	svc, store := newService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, institutionRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID, domain.UserUpdateRequest{Name: "Casa Nova", Phone: "11988887777"})
	require.NoError(t, err)
	assert.Equal(t, "Casa Nova", updated.Name)

	inst, err := store.GetInstitutionByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Nova", inst.Name)
	assert.Equal(t, "11988887777", inst.Phone)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "(11) 98888-7777", me.Phone)
}
