package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/handler"
)

// mockLedgerServicer is a test double for handler.LedgerServicer.
// Set only the method fields your test needs.
type mockLedgerServicer struct {
	add          func(ctx context.Context, rec domain.Record) (domain.Record, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Record, error)
	list         func(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	update       func(ctx context.Context, id uuid.UUID, rec domain.Record) (domain.Record, error)
	remove       func(ctx context.Context, id uuid.UUID) error
	recall       func(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error)
	routes       func(ctx context.Context) ([]domain.RouteRecall, error)
	reconcile    func(ctx context.Context) error
	expenseItems func(ctx context.Context) ([]string, error)
}

func (m *mockLedgerServicer) Add(ctx context.Context, rec domain.Record) (domain.Record, error) {
	return m.add(ctx, rec)
}
func (m *mockLedgerServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	return m.getByID(ctx, id)
}
func (m *mockLedgerServicer) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	return m.list(ctx, filter)
}
func (m *mockLedgerServicer) Update(ctx context.Context, id uuid.UUID, rec domain.Record) (domain.Record, error) {
	return m.update(ctx, id, rec)
}
func (m *mockLedgerServicer) Remove(ctx context.Context, id uuid.UUID) error {
	return m.remove(ctx, id)
}
func (m *mockLedgerServicer) Recall(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error) {
	return m.recall(ctx, key)
}
func (m *mockLedgerServicer) Routes(ctx context.Context) ([]domain.RouteRecall, error) {
	return m.routes(ctx)
}
func (m *mockLedgerServicer) Reconcile(ctx context.Context) error {
	return m.reconcile(ctx)
}
func (m *mockLedgerServicer) ExpenseItems(ctx context.Context) ([]string, error) {
	return m.expenseItems(ctx)
}

var _ handler.LedgerServicer = (*mockLedgerServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverWith bundles the servicer mocks a test wants to wire; nil fields stay
// nil, which is fine for endpoints the test never hits.
type serverWith struct {
	ledger    handler.LedgerServicer
	stats     handler.StatsServicer
	locations handler.LocationServicer
	sms       handler.SMSServicer
	export    handler.ExportServicer
	settings  handler.SettingsServicer
}

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(w serverWith) http.Handler {
	return handler.NewServer(w.ledger, w.stats, w.locations, w.sms, w.export, w.settings).Routes()
}

func recordFixture() domain.Record {
	return domain.Record{
		ID:       uuid.New(),
		Date:     openapi_types.Date{Time: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		Time:     "09:30",
		Type:     domain.TypeTrip,
		From:     "안성",
		To:       "부산",
		Distance: 350,
		Income:   450000,
		Cost:     120000,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- POST /records ---------------------------------------------------------

func TestCreateRecord_201(t *testing.T) {
	fixture := recordFixture()
	svc := &mockLedgerServicer{
		add: func(_ context.Context, _ domain.Record) (domain.Record, error) {
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/records", jsonBody(t, fixture))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.From, resp.From)
}

func TestCreateRecord_400_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/records", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: &mockLedgerServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
}

func TestCreateRecord_422_ValidationError(t *testing.T) {
	svc := &mockLedgerServicer{
		add: func(_ context.Context, _ domain.Record) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("service.LedgerService.Add: %w",
				fmt.Errorf("%w: trip requires both origin and destination", domain.ErrValidation))
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/records", jsonBody(t, recordFixture()))
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "trip requires both origin and destination", resp.Error.Message)
}

// ---- GET /records ----------------------------------------------------------

func TestListRecords_200_FilterPassthrough(t *testing.T) {
	var got domain.RecordFilter
	svc := &mockLedgerServicer{
		list: func(_ context.Context, f domain.RecordFilter) ([]domain.Record, error) {
			got = f
			return []domain.Record{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/records?from=2024-06-01&to=2024-06-30&type=fuel", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.From)
	assert.Equal(t, "2024-06-01", got.From.Format("2006-01-02"))
	require.NotNil(t, got.To)
	assert.Equal(t, "2024-06-30", got.To.Format("2006-01-02"))
	assert.Equal(t, domain.TypeFuel, got.Type)
}

func TestListRecords_400_BadDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/records?from=June", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: &mockLedgerServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRecords_400_BadType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/records?type=refund", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: &mockLedgerServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /records/{id} -----------------------------------------------------

func TestGetRecord_200(t *testing.T) {
	fixture := recordFixture()
	svc := &mockLedgerServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Record, error) {
			require.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/records/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRecord_404(t *testing.T) {
	svc := &mockLedgerServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("service.LedgerService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/records/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestGetRecord_400_BadUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/records/forty-two", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: &mockLedgerServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PUT /records/{id} -----------------------------------------------------

func TestUpdateRecord_200(t *testing.T) {
	fixture := recordFixture()
	svc := &mockLedgerServicer{
		update: func(_ context.Context, id uuid.UUID, rec domain.Record) (domain.Record, error) {
			require.Equal(t, fixture.ID, id)
			rec.ID = id
			return rec, nil
		},
	}

	body := fixture
	body.Income = 500000
	req := httptest.NewRequest(http.MethodPut, "/records/"+fixture.ID.String(), jsonBody(t, body))
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(500000), resp.Income)
}

// ---- DELETE /records/{id} --------------------------------------------------

func TestDeleteRecord_204(t *testing.T) {
	svc := &mockLedgerServicer{
		remove: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/records/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// ---- GET /expense-items ----------------------------------------------------

func TestListExpenseItems_200(t *testing.T) {
	svc := &mockLedgerServicer{
		expenseItems: func(_ context.Context) ([]string, error) {
			return []string{"세차", "통행료"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/expense-items", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var labels []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&labels))
	assert.Equal(t, []string{"세차", "통행료"}, labels)
}

// ---- GET /healthz ----------------------------------------------------------

func TestGetHealth_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
