package checkin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/pkg/keymutex"
	"github.com/buildforce/attendance-backend-go/internal/pkg/sse"
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type fakeCheckinRepo struct {
	mu      sync.Mutex
	records []checkin.CheckIn
}

func (f *fakeCheckinRepo) Create(_ context.Context, c checkin.CheckIn) (checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.EmployeeID == c.EmployeeID && existing.Type == c.Type && existing.Date.Equal(c.Date) {
			return checkin.CheckIn{}, checkin.ErrDuplicateCheckin
		}
	}
	c.CreatedAt = time.Now()
	f.records = append(f.records, c)
	return c, nil
}

func (f *fakeCheckinRepo) GetByID(_ context.Context, id string) (checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.records {
		if c.ID == id {
			return c, nil
		}
	}
	return checkin.CheckIn{}, checkin.ErrCheckinNotFound
}

func (f *fakeCheckinRepo) ListForEmployeeOnDate(_ context.Context, employeeID string, date time.Time) ([]checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []checkin.CheckIn
	for _, c := range f.records {
		if c.EmployeeID == employeeID && c.Date.Equal(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCheckinRepo) List(_ context.Context, _ checkin.CheckinFilter) ([]checkin.CheckIn, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, int64(len(f.records)), nil
}

func (f *fakeCheckinRepo) ListForDate(_ context.Context, date time.Time) ([]checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []checkin.CheckIn
	for _, c := range f.records {
		if c.Date.Equal(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCheckinRepo) UpdateStatus(_ context.Context, id string, status checkin.Status, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			f.records[i].AdminNotes = notes
			return nil
		}
	}
	return checkin.ErrCheckinNotFound
}

func (f *fakeCheckinRepo) CountByStatus(_ context.Context, date time.Time) (map[checkin.Status]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[checkin.Status]int64)
	for _, c := range f.records {
		if c.Date.Equal(date) {
			counts[c.Status]++
		}
	}
	return counts, nil
}

func (f *fakeCheckinRepo) CountSuspiciousForDate(_ context.Context, date time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.records {
		if c.Date.Equal(date) && c.IsSuspicious {
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
	byCode map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	e, ok := f.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.byCode {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.byCode)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(_ context.Context, _ string) error            { return nil }

type fakeWorksiteRepo struct {
	byCode map[string]worksite.Worksite
}

func (f *fakeWorksiteRepo) Create(_ context.Context, w worksite.Worksite) (worksite.Worksite, error) {
	return w, nil
}

func (f *fakeWorksiteRepo) GetByCode(_ context.Context, code string) (worksite.Worksite, error) {
	w, ok := f.byCode[code]
	if !ok {
		return worksite.Worksite{}, worksite.ErrWorksiteNotFound
	}
	return w, nil
}

func (f *fakeWorksiteRepo) GetByID(_ context.Context, id string) (worksite.Worksite, error) {
	for _, w := range f.byCode {
		if w.ID == id {
			return w, nil
		}
	}
	return worksite.Worksite{}, worksite.ErrWorksiteNotFound
}

func (f *fakeWorksiteRepo) List(_ context.Context, _ worksite.WorksiteFilter) ([]worksite.Worksite, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorksiteRepo) Update(_ context.Context, _ worksite.Worksite) error { return nil }
func (f *fakeWorksiteRepo) Delete(_ context.Context, _ string) error            { return nil }

type fakeQRCodeRepo struct {
	mu      sync.Mutex
	byToken map[string]qrcode.QRCode
	scans   int
	success int
}

func (f *fakeQRCodeRepo) Create(_ context.Context, q qrcode.QRCode) (qrcode.QRCode, error) {
	return q, nil
}

func (f *fakeQRCodeRepo) GetByToken(_ context.Context, token string) (qrcode.QRCode, error) {
	q, ok := f.byToken[token]
	if !ok {
		return qrcode.QRCode{}, qrcode.ErrQRCodeNotFound
	}
	return q, nil
}

func (f *fakeQRCodeRepo) GetByID(_ context.Context, id string) (qrcode.QRCode, error) {
	for _, q := range f.byToken {
		if q.ID == id {
			return q, nil
		}
	}
	return qrcode.QRCode{}, qrcode.ErrQRCodeNotFound
}

func (f *fakeQRCodeRepo) ListForWorksite(_ context.Context, _ string) ([]qrcode.QRCode, error) {
	return nil, nil
}

func (f *fakeQRCodeRepo) RecordScan(_ context.Context, _ string, successful bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	if successful {
		f.success++
	}
	return nil
}

func (f *fakeQRCodeRepo) Deactivate(_ context.Context, _ string) error { return nil }

func (f *fakeQRCodeRepo) DeactivateExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*CheckinServiceImpl, *fakeCheckinRepo, *fakeQRCodeRepo, *sse.Hub) {
	t.Helper()

	loc, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)

	site := perthSite()
	emp := activeEmployee()

	checkinRepo := &fakeCheckinRepo{}
	qrRepo := &fakeQRCodeRepo{byToken: map[string]qrcode.QRCode{}}
	hub := sse.NewHub()

	svc := &CheckinServiceImpl{
		checkinRepo:  checkinRepo,
		employeeRepo: &fakeEmployeeRepo{byCode: map[string]employee.Employee{emp.EmployeeID: emp}},
		worksiteRepo: &fakeWorksiteRepo{byCode: map[string]worksite.Worksite{site.WorksiteID: site}},
		qrcodeRepo:   qrRepo,
		locks:        keymutex.New(),
		hub:          hub,
		location:     loc,
		now: func() time.Time {
			return time.Date(2026, 3, 16, 6, 50, 0, 0, loc)
		},
	}
	return svc, checkinRepo, qrRepo, hub
}

func validRequest() checkin.CreateCheckinRequest {
	return checkin.CreateCheckinRequest{
		EmployeeID: "EMP0001",
		WorksiteID: "SITE001",
		Type:       "in",
		Latitude:   -31.9505,
		Longitude:  115.8605,
	}
}

func TestCreateCheckin_Approved(t *testing.T) {
	svc, repo, _, hub := newTestService(t)

	events, cleanup := hub.Subscribe()
	defer cleanup()

	resp, err := svc.CreateCheckin(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "Jack Miller", resp.EmployeeName)
	assert.Equal(t, "Perth CBD Tower", resp.WorksiteName)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, "gps", resp.VerificationMethod)
	assert.Len(t, repo.records, 1)

	select {
	case ev := <-events:
		assert.Equal(t, "checkin_created", ev.Event)
	default:
		t.Fatal("expected a published event")
	}
}

func TestCreateCheckin_UnknownWorksite(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	req := validRequest()
	req.WorksiteID = "SITE999"

	_, err := svc.CreateCheckin(context.Background(), req)
	assert.ErrorIs(t, err, checkin.ErrWorksiteUnknown)
}

func TestCreateCheckin_InactiveWorksite(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	site := perthSite()
	site.Status = worksite.StatusCompleted
	svc.worksiteRepo = &fakeWorksiteRepo{byCode: map[string]worksite.Worksite{site.WorksiteID: site}}

	_, err := svc.CreateCheckin(context.Background(), validRequest())
	assert.ErrorIs(t, err, checkin.ErrWorksiteUnknown)
}

func TestCreateCheckin_DuplicateSameDay(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateCheckin(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.CreateCheckin(context.Background(), validRequest())
	assert.ErrorIs(t, err, checkin.ErrDuplicateCheckin)
}

func TestCreateCheckin_ConcurrentDuplicates(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	const attempts = 20
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateCheckin(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, checkin.ErrDuplicateCheckin):
			dup++
		}
	}

	assert.Equal(t, 1, ok, "exactly one attempt may win")
	assert.Equal(t, attempts-1, dup)
	assert.Len(t, repo.records, 1)
}

func TestCreateCheckin_OutAfterIn(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	_, err := svc.CreateCheckin(context.Background(), validRequest())
	require.NoError(t, err)

	out := validRequest()
	out.Type = "out"
	resp, err := svc.CreateCheckin(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, "out", resp.Type)
	assert.Equal(t, "approved", resp.Status)
	assert.Len(t, repo.records, 2)
}

func TestCreateCheckin_OutWithoutIn(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	out := validRequest()
	out.Type = "out"

	_, err := svc.CreateCheckin(context.Background(), out)
	assert.ErrorIs(t, err, checkin.ErrInvalidSequence)
	assert.Empty(t, repo.records, "hard rejections write no record")
}

func TestCreateQRCheckin(t *testing.T) {
	svc, _, qrRepo, _ := newTestService(t)

	qrRepo.byToken["a1b2c3"] = qrcode.QRCode{
		ID:                  "qr-1",
		Token:               "a1b2c3",
		WorksiteID:          "ws-1",
		AllowCheckinAnytime: true,
		IsActive:            true,
	}

	// Scan well before the early buffer; the code's anytime flag suppresses
	// the too-early rule.
	loc, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 16, 5, 0, 0, 0, loc)
	}

	req := validRequest()
	req.WorksiteID = ""

	resp, err := svc.CreateQRCheckin(context.Background(), "a1b2c3", req)
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "qr", resp.VerificationMethod)
	assert.Equal(t, 1, qrRepo.scans)
	assert.Equal(t, 1, qrRepo.success)
}

func TestCreateQRCheckin_ExpiredCode(t *testing.T) {
	svc, _, qrRepo, _ := newTestService(t)

	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	qrRepo.byToken["dead"] = qrcode.QRCode{
		ID:         "qr-2",
		Token:      "dead",
		WorksiteID: "ws-1",
		IsActive:   true,
		ExpiresAt:  &past,
	}

	_, err := svc.CreateQRCheckin(context.Background(), "dead", validRequest())
	assert.ErrorIs(t, err, qrcode.ErrQRCodeExpired)
}

func TestStats(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateCheckin(context.Background(), validRequest())
	require.NoError(t, err)

	// An empty date resolves to today truncated to the reporting timezone's
	// midnight, the same value stored on records.
	stats, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-16", stats.Date)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(0), stats.Flagged)
	assert.Equal(t, int64(0), stats.Suspicious)

	stats, err = svc.Stats(context.Background(), "2026-03-16")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)

	stats, err = svc.Stats(context.Background(), "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
}

func TestStats_BadDate(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Stats(context.Background(), "16/03/2026")

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "date", errs[0].Field)
}

func TestReviewCheckin(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	created, err := svc.CreateCheckin(context.Background(), validRequest())
	require.NoError(t, err)

	notes := "confirmed with site supervisor"
	resp, err := svc.ReviewCheckin(context.Background(), checkin.ReviewCheckinRequest{
		ID:         created.ID,
		Status:     "rejected",
		AdminNotes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, checkin.StatusRejected, repo.records[0].Status)
}
