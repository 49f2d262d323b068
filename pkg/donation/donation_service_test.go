package donation

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"benigna-backend/domain"
	"benigna-backend/entities"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/memstore"
	"benigna-backend/pkg/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendMail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

// 2024-01-01 is a Monday.
var today = time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memstore.Store
	mailer  *recordingMailer
	service *donationService
	donorID string
	inst    *entities.Institution
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	inst := &entities.Institution{
		ID:           uuid.New(),
		Name:         "Casa Esperança",
		Email:        "contato@casa.org",
		WorkingHours: schedule.DefaultWeek(),
	}
	require.NoError(t, store.SaveInstitution(context.Background(), inst))

	mailer := &recordingMailer{}
	svc := NewDonationService(store, store, store, storage.NewLocalStorage(t.TempDir()), mailer, time.UTC, zap.NewNop()).(*donationService)
	svc.now = func() time.Time { return today }

	return &fixture{
		store:   store,
		mailer:  mailer,
		service: svc,
		donorID: uuid.NewString(),
		inst:    inst,
	}
}

func imageHeader(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"][0]
}

func donationRequest() domain.DonationRequest {
	return domain.DonationRequest{
		Category:    "Roupas",
		Subcategory: "Casacos",
		Description: "Casacos de inverno infantis",
		Quantity:    3,
		Condition:   entities.ConditionUsedGood,
	}
}

func (f *fixture) create(t *testing.T) *domain.DonationResponse {
	t.Helper()
	d, err := f.service.CreateDonation(context.Background(), donationRequest(), f.donorID)
	require.NoError(t, err)
	return d
}

func (f *fixture) schedule(t *testing.T, id string) *domain.DonationResponse {
	t.Helper()
	d, err := f.service.ScheduleDelivery(context.Background(), id, domain.ScheduleDonationRequest{
		InstitutionID: f.inst.ID.String(),
		Date:          "2024-01-02",
		Time:          "09:30",
	}, f.donorID)
	require.NoError(t, err)
	return d
}

func TestCreateDonation(t *testing.T) {
	f := newFixture(t)
	req := donationRequest()
	req.Images = []*multipart.FileHeader{imageHeader(t, "a.jpg"), imageHeader(t, "b.png")}

	d, err := f.service.CreateDonation(context.Background(), req, f.donorID)
	require.NoError(t, err)

	assert.Equal(t, entities.DonationStatusPending, d.Status)
	assert.Empty(t, d.InstitutionID)
	assert.Equal(t, f.donorID, d.DonorID)
	require.Len(t, d.Images, 2)
	assert.Equal(t, "/uploads/donations/"+d.ID+"-0.jpg", d.Images[0])
	assert.False(t, d.CanRate)
	assert.Equal(t, today, d.CreatedAt)
}

func TestCreateDonation_ImageLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := donationRequest()
	for i := 0; i < domain.MaxDonationImages+1; i++ {
		req.Images = append(req.Images, &multipart.FileHeader{Filename: "x.png", Size: 10})
	}
	_, err := f.service.CreateDonation(ctx, req, f.donorID)
	assert.ErrorIs(t, err, domain.ErrTooManyImages)

	req.Images = []*multipart.FileHeader{{Filename: "big.png", Size: domain.MaxDonationImageSize + 1}}
	_, err = f.service.CreateDonation(ctx, req, f.donorID)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)

	_, err = f.service.CreateDonation(ctx, donationRequest(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)

	all, err := f.store.GetDonations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScheduleDelivery(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	d := f.schedule(t, created.ID)

	assert.Equal(t, entities.DonationStatusScheduled, d.Status)
	assert.Equal(t, f.inst.ID.String(), d.InstitutionID)
	assert.Equal(t, "Casa Esperança", d.InstitutionName)
	require.NotNil(t, d.ScheduledDate)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), *d.ScheduledDate)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "contato@casa.org", f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].body, "02/01/2024")
	assert.Contains(t, f.mailer.sent[0].body, "09:30")
}

func TestScheduleDelivery_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t)

	req := func(date, slot string) domain.ScheduleDonationRequest {
		return domain.ScheduleDonationRequest{InstitutionID: f.inst.ID.String(), Date: date, Time: slot}
	}

	cases := []struct {
		name   string
		req    domain.ScheduleDonationRequest
		userID string
		err    error
	}{
		{"today is too early", req("2024-01-01", "16:00"), f.donorID, domain.ErrScheduleDateTooEarly},
		{"past date", req("2023-12-29", "09:00"), f.donorID, domain.ErrScheduleDateTooEarly},
		{"closed weekday", req("2024-01-06", "09:00"), f.donorID, domain.ErrSlotUnavailable},
		{"slot off the grid", req("2024-01-02", "09:15"), f.donorID, domain.ErrSlotUnavailable},
		{"closing time is not a slot", req("2024-01-02", "17:00"), f.donorID, domain.ErrSlotUnavailable},
		{"bad date", req("02/01/2024", "09:00"), f.donorID, domain.ErrInvalidDate},
		{"unknown institution", domain.ScheduleDonationRequest{InstitutionID: uuid.NewString(), Date: "2024-01-02", Time: "09:00"}, f.donorID, domain.ErrInstitutionNotFound},
		{"someone else's donation", req("2024-01-02", "09:00"), uuid.NewString(), domain.ErrUnauthorizedDonationAccess},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.ScheduleDelivery(ctx, created.ID, tc.req, tc.userID)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	stored, err := f.store.GetDonationByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DonationStatusPending, stored.Status)
	assert.Empty(t, f.mailer.sent)

	f.schedule(t, created.ID)
	_, err = f.service.ScheduleDelivery(ctx, created.ID, req("2024-01-03", "10:00"), f.donorID)
	assert.ErrorIs(t, err, domain.ErrInvalidDonationStatus)
}

func TestScheduleDelivery_MailFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")

	d := f.schedule(t, f.create(t).ID)
	assert.Equal(t, entities.DonationStatusScheduled, d.Status)
}

func TestConfirmDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t)

	_, err := f.service.ConfirmDelivery(ctx, created.ID, f.inst.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess, "pending donations have no institution yet")

	f.schedule(t, created.ID)

	_, err = f.service.ConfirmDelivery(ctx, created.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	d, err := f.service.ConfirmDelivery(ctx, created.ID, f.inst.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.DonationStatusDelivered, d.Status)
	require.NotNil(t, d.DeliveredDate)
	assert.True(t, d.CanRate)

	_, err = f.service.ConfirmDelivery(ctx, created.ID, f.inst.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidDonationStatus)

	_, err = f.store.SaveRating(ctx, &entities.Rating{ID: uuid.New(), InstitutionID: f.inst.ID, DonationID: uuid.MustParse(created.ID), Rating: 5})
	require.NoError(t, err)

	got, err := f.service.GetDonationByID(ctx, created.ID, f.donorID, domain.RoleDonor)
	require.NoError(t, err)
	assert.False(t, got.CanRate)
}

func TestCancelDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.create(t)
	d, err := f.service.CancelDonation(ctx, pending.ID, f.donorID)
	require.NoError(t, err)
	assert.Equal(t, entities.DonationStatusCancelled, d.Status)

	_, err = f.service.CancelDonation(ctx, pending.ID, f.donorID)
	assert.ErrorIs(t, err, domain.ErrInvalidDonationStatus)

	scheduled := f.create(t)
	f.schedule(t, scheduled.ID)
	_, err = f.service.CancelDonation(ctx, scheduled.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	d, err = f.service.CancelDonation(ctx, scheduled.ID, f.donorID)
	require.NoError(t, err)
	assert.Equal(t, entities.DonationStatusCancelled, d.Status)
}

func TestDeleteDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t)

	assert.ErrorIs(t, f.service.DeleteDonation(ctx, created.ID, uuid.NewString()), domain.ErrUnauthorizedDonationAccess)
	require.NoError(t, f.service.DeleteDonation(ctx, created.ID, f.donorID))
	assert.ErrorIs(t, f.service.DeleteDonation(ctx, created.ID, f.donorID), domain.ErrDonationNotFound)
}

func TestGetDonationByID_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t)

	_, err := f.service.GetDonationByID(ctx, created.ID, f.donorID, domain.RoleDonor)
	assert.NoError(t, err)
	_, err = f.service.GetDonationByID(ctx, created.ID, uuid.NewString(), domain.RoleAdmin)
	assert.NoError(t, err)
	_, err = f.service.GetDonationByID(ctx, created.ID, f.inst.ID.String(), domain.RoleInstitution)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	f.schedule(t, created.ID)
	_, err = f.service.GetDonationByID(ctx, created.ID, f.inst.ID.String(), domain.RoleInstitution)
	assert.NoError(t, err)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t)
	second := f.create(t)
	f.schedule(t, first.ID)

	mine, err := f.service.GetDonorDonations(ctx, f.donorID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, "Casa Esperança", mine[1].InstitutionName)

	received, err := f.service.GetInstitutionDonations(ctx, f.inst.ID.String())
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, first.ID, received[0].ID)
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entities.DonationStatusPending, entities.DonationStatusScheduled, true},
		{entities.DonationStatusPending, entities.DonationStatusCancelled, true},
		{entities.DonationStatusPending, entities.DonationStatusDelivered, false},
		{entities.DonationStatusScheduled, entities.DonationStatusDelivered, true},
		{entities.DonationStatusScheduled, entities.DonationStatusCancelled, true},
		{entities.DonationStatusScheduled, entities.DonationStatusPending, false},
		{entities.DonationStatusDelivered, entities.DonationStatusCancelled, false},
		{entities.DonationStatusCancelled, entities.DonationStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, IsTerminal(entities.DonationStatusDelivered))
	assert.True(t, IsTerminal(entities.DonationStatusCancelled))
	assert.False(t, IsTerminal(entities.DonationStatusPending))
}
