package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type seqID struct {
	next int64
}

func (s *seqID) Generate() int64 {
	s.next++

	return s.next
}

type fakeRepoDB struct {
	requests map[int64]*entity.Request
	elements map[int64]*entity.Element
	lookups  map[entity.LookupCategory][]entity.Lookup

	lastLimit int
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		requests: make(map[int64]*entity.Request),
		elements: make(map[int64]*entity.Element),
		lookups: map[entity.LookupCategory][]entity.Lookup{
			entity.LookupRequestType: {{ID: 1, Category: entity.LookupRequestType, Name: "Rebrand"}},
			entity.LookupElementType: {{ID: 10, Category: entity.LookupElementType, Name: "Signboard"}},
			entity.LookupStatus:      {{ID: 20, Category: entity.LookupStatus, Name: "Open"}, {ID: 21, Category: entity.LookupStatus, Name: "Closed"}},
			entity.LookupStage:       {{ID: 30, Category: entity.LookupStage, Name: "Survey"}},
		},
	}
}

func (f *fakeRepoDB) CreateRequest(_ context.Context, req *entity.Request) error {
	cp := *req
	f.requests[req.ID] = &cp

	return nil
}

func (f *fakeRepoDB) RequestByID(_ context.Context, id int64) (*entity.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *req

	return &cp, nil
}

func (f *fakeRepoDB) Requests(_ context.Context, statusID *int64, limit, offset int) ([]entity.Request, int64, error) {
	f.lastLimit = limit

	var out []entity.Request
	for _, req := range f.requests {
		if statusID != nil && req.StatusID != *statusID {
			continue
		}
		out = append(out, *req)
	}

	return out, int64(len(out)), nil
}

func (f *fakeRepoDB) UpdateRequest(_ context.Context, req *entity.Request) error {
	if _, ok := f.requests[req.ID]; !ok {
		return goerror.ErrNotFound
	}
	cp := *req
	f.requests[req.ID] = &cp

	return nil
}

func (f *fakeRepoDB) DeleteRequest(_ context.Context, id int64) error {
	if _, ok := f.requests[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.requests, id)

	return nil
}

func (f *fakeRepoDB) CreateElement(_ context.Context, el *entity.Element) error {
	cp := *el
	f.elements[el.ID] = &cp

	return nil
}

func (f *fakeRepoDB) ElementsByRequest(_ context.Context, requestID int64) ([]entity.Element, error) {
	var out []entity.Element
	for _, el := range f.elements {
		if el.RequestID == requestID {
			out = append(out, *el)
		}
	}

	return out, nil
}

func (f *fakeRepoDB) DeleteElement(_ context.Context, requestID, elementID int64) error {
	el, ok := f.elements[elementID]
	if !ok || el.RequestID != requestID {
		return goerror.ErrNotFound
	}
	delete(f.elements, elementID)

	return nil
}

func (f *fakeRepoDB) Lookups(_ context.Context, category entity.LookupCategory) ([]entity.Lookup, error) {
	return f.lookups[category], nil
}

func (f *fakeRepoDB) LookupExists(_ context.Context, category entity.LookupCategory, id int64) (bool, error) {
	for _, l := range f.lookups[category] {
		if l.ID == id {
			return true, nil
		}
	}

	return false, nil
}

type fixture struct {
	uc    *Usecase
	repo  *fakeRepoDB
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := newFakeRepoDB()

	ins, err := instrument.New(context.Background(), instrument.Options{ServiceName: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ins.Close(context.Background()) })

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	uc := New(Dependency{
		RepoDB:     repo,
		Clock:      clk,
		UID:        &seqID{},
		Validator:  v10,
		Instrument: ins,
	})

	return &fixture{uc: uc, repo: repo, clock: clk}
}

func authedCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), &jwt.Claims{UserID: userID, Role: role})
}

func (f *fixture) addRequest(id, createdBy int64) *entity.Request {
	req := &entity.Request{
		ID:            id,
		RequestTypeID: 1,
		OutletName:    "Galle Face Tavern",
		OutletCode:    "GF-001",
		AddressLine1:  "1 Galle Rd",
		Urgency:       entity.UrgencyMedium,
		StatusID:      20,
		StageID:       30,
		ContactName:   "Ruwan",
		ContactNumber: "0771234567",
		CreatedBy:     createdBy,
		CreatedAt:     f.clock.now,
		UpdatedAt:     f.clock.now,
	}
	f.repo.requests[id] = req

	return req
}

func validCreateInput() CreateRequestInput {
	return CreateRequestInput{
		RequestTypeID: 1,
		OutletName:    "Galle Face Tavern",
		OutletCode:    "GF-001",
		AddressLine1:  "1 Galle Rd",
		Urgency:       "High",
		StatusID:      20,
		StageID:       30,
		ContactName:   "Ruwan",
		ContactNumber: "0771234567",
	}
}

func assertBusinessError(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.TypeBusiness, ge.Type())
	assert.Equal(t, msg, ge.Msg())
	assert.Equal(t, code, ge.Code())
}

func TestUsecase_CreateRequest(t *testing.T) {
	t.Run("records the caller as owner", func(t *testing.T) {
		f := newFixture(t)

		req, err := f.uc.CreateRequest(authedCtx(7, "Vendor"), validCreateInput())

		require.NoError(t, err)
		assert.Equal(t, int64(7), req.CreatedBy)
		assert.Equal(t, entity.UrgencyHigh, req.Urgency)
		assert.Contains(t, f.repo.requests, req.ID)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.CreateRequest(context.Background(), validCreateInput())

		assertBusinessError(t, err, "missing bearer token", goerror.CodeUnauthorized)
	})

	t.Run("rejects unknown lookup references", func(t *testing.T) {
		f := newFixture(t)
		in := validCreateInput()
		in.StatusID = 999

		_, err := f.uc.CreateRequest(authedCtx(7, "Vendor"), in)

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
		assert.Contains(t, ge.Fields(), "status")
	})

	t.Run("rejects unknown urgency", func(t *testing.T) {
		f := newFixture(t)
		in := validCreateInput()
		in.Urgency = "Critical"

		_, err := f.uc.CreateRequest(authedCtx(7, "Vendor"), in)

		var ve *validator.V10ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUsecase_UpdateRequest(t *testing.T) {
	outletName := "New Name"
	signedOff := true

	t.Run("owner can patch", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		req, err := f.uc.UpdateRequest(authedCtx(7, "Vendor"), UpdateRequestInput{
			ID:         1,
			OutletName: &outletName,
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", req.OutletName)
		assert.Equal(t, "GF-001", req.OutletCode)
	})

	t.Run("another vendor cannot", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		_, err := f.uc.UpdateRequest(authedCtx(8, "Vendor"), UpdateRequestInput{
			ID:         1,
			OutletName: &outletName,
		})

		assertBusinessError(t, err, "not allowed to modify this request", goerror.CodeForbidden)
	})

	t.Run("an admin can", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		_, err := f.uc.UpdateRequest(authedCtx(99, "Admin"), UpdateRequestInput{
			ID:         1,
			OutletName: &outletName,
		})

		assert.NoError(t, err)
	})

	t.Run("sign off stamps once", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		first, err := f.uc.UpdateRequest(authedCtx(7, "Vendor"), UpdateRequestInput{ID: 1, SignedOff: &signedOff})
		require.NoError(t, err)
		require.NotNil(t, first.SignedOffAt)
		stamped := *first.SignedOffAt

		f.clock.now = f.clock.now.Add(time.Hour)

		second, err := f.uc.UpdateRequest(authedCtx(7, "Vendor"), UpdateRequestInput{ID: 1, SignedOff: &signedOff})
		require.NoError(t, err)
		require.NotNil(t, second.SignedOffAt)
		assert.Equal(t, stamped, *second.SignedOffAt)
	})

	t.Run("unknown status reference", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)
		bad := int64(999)

		_, err := f.uc.UpdateRequest(authedCtx(7, "Vendor"), UpdateRequestInput{ID: 1, StatusID: &bad})

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
	})

	t.Run("missing request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.UpdateRequest(authedCtx(7, "Vendor"), UpdateRequestInput{ID: 404, OutletName: &outletName})

		assertBusinessError(t, err, "Branding request not found", goerror.CodeNotFound)
	})
}

func TestUsecase_DeleteRequest(t *testing.T) {
	t.Run("owner can delete", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		err := f.uc.DeleteRequest(authedCtx(7, "Vendor"), 1)

		require.NoError(t, err)
		assert.NotContains(t, f.repo.requests, int64(1))
	})

	t.Run("another vendor cannot", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		err := f.uc.DeleteRequest(authedCtx(8, "Vendor"), 1)

		assertBusinessError(t, err, "not allowed to modify this request", goerror.CodeForbidden)
		assert.Contains(t, f.repo.requests, int64(1))
	})
}

func TestUsecase_Elements(t *testing.T) {
	valid := AddElementInput{
		RequestID:     1,
		ElementTypeID: 10,
		Width:         2.5,
		Height:        1.2,
		Quantity:      3,
		UnitCost:      1500,
	}

	t.Run("add and list", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		el, err := f.uc.AddElement(authedCtx(7, "Vendor"), valid)
		require.NoError(t, err)
		assert.Equal(t, float64(4500), el.TotalCost())

		listed, err := f.uc.ListElements(authedCtx(7, "Vendor"), 1)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("unknown element type", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)
		in := valid
		in.ElementTypeID = 999

		_, err := f.uc.AddElement(authedCtx(7, "Vendor"), in)

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
	})

	t.Run("remove", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)

		el, err := f.uc.AddElement(authedCtx(7, "Vendor"), valid)
		require.NoError(t, err)

		require.NoError(t, f.uc.RemoveElement(authedCtx(7, "Vendor"), 1, el.ID))

		err = f.uc.RemoveElement(authedCtx(7, "Vendor"), 1, el.ID)
		assertBusinessError(t, err, "Branding element not found", goerror.CodeNotFound)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)
		in := valid
		in.Quantity = 0

		_, err := f.uc.AddElement(authedCtx(7, "Vendor"), in)

		var ve *validator.V10ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUsecase_ListRequests(t *testing.T) {
	t.Run("defaults the page size", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ListRequests(context.Background(), ListRequestsInput{})

		require.NoError(t, err)
		assert.Equal(t, 20, f.repo.lastLimit)
	})

	t.Run("filters by status", func(t *testing.T) {
		f := newFixture(t)
		f.addRequest(1, 7)
		closed := f.addRequest(2, 7)
		closed.StatusID = 21
		status := int64(21)

		out, err := f.uc.ListRequests(context.Background(), ListRequestsInput{StatusID: &status})

		require.NoError(t, err)
		require.Len(t, out.Requests, 1)
		assert.Equal(t, int64(2), out.Requests[0].ID)
	})
}

func TestUsecase_ListLookups(t *testing.T) {
	t.Run("known category", func(t *testing.T) {
		f := newFixture(t)

		lookups, err := f.uc.ListLookups(context.Background(), entity.LookupStatus)

		require.NoError(t, err)
		assert.Len(t, lookups, 2)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ListLookups(context.Background(), "color")

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
	})
}
