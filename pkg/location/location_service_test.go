package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"benigna-backend/domain"
	"benigna-backend/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

type fakeProvider struct {
	mu    sync.Mutex
	hits  map[string]int
	query map[string]string
}

func newProviderServer(t *testing.T) (*httptest.Server, *fakeProvider) {
	t.Helper()
	p := &fakeProvider{hits: map[string]int{}, query: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		p.record("search", r.URL.RawQuery)
		assert.Equal(t, "br", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		if r.URL.Query().Get("q") == "lugar nenhum" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"lat":"-23.5614","lon":"-46.6559","display_name":"Avenida Paulista, São Paulo","address":{"town":"São Paulo","state":"São Paulo"}}]`))
	})
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		p.record("reverse", r.URL.RawQuery)
		if r.URL.Query().Get("lat") == "0.000000" {
			_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
			return
		}
		_, _ = w.Write([]byte(`{"lat":"-23.55","lon":"-46.63","display_name":"Praça da Sé","address":{"village":"Sé","state":"São Paulo"}}`))
	})
	mux.HandleFunc("/ws/01310100/json/", func(w http.ResponseWriter, r *http.Request) {
		p.record("cep", r.URL.Path)
		_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","complemento":"de 612 a 1510 - lado par","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})
	mux.HandleFunc("/ws/99999999/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro":"true"}`))
	})
	mux.HandleFunc("/ws/88888888/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro":true}`))
	})
	mux.HandleFunc("/ws/77777777/json/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, p
}

func (p *fakeProvider) record(kind, query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hits[kind]++
	p.query[kind] = query
}

func (p *fakeProvider) count(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[kind]
}

func newTestService(t *testing.T) (LocationService, *fakeProvider) {
	server, provider := newProviderServer(t)
	cache := &memoryCache{values: map[string][]byte{}}
	return NewLocationService(server.URL, server.URL, cache, zap.NewNop()), provider
}

func TestGeocode(t *testing.T) {
	svc, provider := newTestService(t)
	ctx := context.Background()

	loc, err := svc.Geocode(ctx, "Avenida Paulista, 1000")
	require.NoError(t, err)

	assert.Equal(t, -23.5614, loc.Latitude)
	assert.Equal(t, -46.6559, loc.Longitude)
	assert.Equal(t, "São Paulo", loc.City)
	assert.Equal(t, "Avenida Paulista, São Paulo", loc.Address)

	_, err = svc.Geocode(ctx, "avenida paulista, 1000")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.count("search"), "second lookup should come from cache")
}

func TestGeocode_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Geocode(context.Background(), "lugar nenhum")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)

	_, err = svc.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestReverseGeocode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	loc, err := svc.ReverseGeocode(ctx, geo.Coordinate{Latitude: -23.5505, Longitude: -46.6333})
	require.NoError(t, err)
	assert.Equal(t, "Sé", loc.City)
	assert.Equal(t, -23.5505, loc.Latitude)

	_, err = svc.ReverseGeocode(ctx, geo.Coordinate{Latitude: 0, Longitude: 0})
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)

	_, err = svc.ReverseGeocode(ctx, geo.Coordinate{Latitude: 95, Longitude: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestLookupZipCode(t *testing.T) {
	svc, provider := newTestService(t)
	ctx := context.Background()

	address, err := svc.LookupZipCode(ctx, "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "01310-100", address.ZipCode)
	assert.Equal(t, "Avenida Paulista", address.Street)
	assert.Equal(t, "Bela Vista", address.Neighborhood)
	assert.Equal(t, "SP", address.State)

	_, err = svc.LookupZipCode(ctx, "01310100")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.count("cep"))
}

func TestLookupZipCode_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.LookupZipCode(ctx, "0131")
	assert.ErrorIs(t, err, domain.ErrZipCodeLength)
	assert.Equal(t, "CEP deve ter 8 dígitos", err.Error())

	_, err = svc.LookupZipCode(ctx, "99999-999")
	assert.ErrorIs(t, err, domain.ErrZipCodeNotFound)

	_, err = svc.LookupZipCode(ctx, "88888-888")
	assert.ErrorIs(t, err, domain.ErrZipCodeNotFound)

	_, err = svc.LookupZipCode(ctx, "77777-777")
	assert.ErrorIs(t, err, domain.ErrGeocodingUnavailable)
}

func TestUnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	svc := NewLocationService(server.URL, server.URL, nil, zap.NewNop())

	_, err := svc.Geocode(context.Background(), "Rua Augusta")
	assert.ErrorIs(t, err, domain.ErrGeocodingUnavailable)
}
