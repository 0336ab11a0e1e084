package payout

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/commission/pkg/service/audit"
	payoutsvc "github.com/amirasaad/commission/pkg/service/payout"
	"github.com/amirasaad/commission/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the routes with a service that has no store behind it.
// Every case below is rejected before the service touches persistence.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := slog.Default()
	svc := payoutsvc.New(nil, audit.New(nil, logger), time.UTC, logger)
	app := fiber.New()
	Routes(app, svc)
	return app
}

func TestSchedule_MissingActorHeader(t *testing.T) {
	app := newTestApp(t)

	body := `{"payout_ids": ["` + uuid.NewString() + `"], "scheduled_date": "2999-01-02", "payment_method": "ach"}`
	req := httptest.NewRequest("POST", "/payouts/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Missing actor identity", pd.Title)
}

func TestSchedule_EmptyPayoutIDs(t *testing.T) {
	app := newTestApp(t)

	body := `{"payout_ids": [], "scheduled_date": "2999-01-02", "payment_method": "ach"}`
	req := httptest.NewRequest("POST", "/payouts/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.HeaderActorID, "user:broker-ops")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSchedule_MalformedPayoutID(t *testing.T) {
	app := newTestApp(t)

	body := `{"payout_ids": ["not-a-uuid"], "scheduled_date": "2999-01-02", "payment_method": "ach"}`
	req := httptest.NewRequest("POST", "/payouts/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.HeaderActorID, "user:broker-ops")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Contains(t, pd.Detail, "not a valid UUID")
}

func TestSchedule_InvalidDate(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		date string
	}{
		{"malformed date", "01/02/2999"},
		{"date in the past", "2001-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"payout_ids": ["` + uuid.NewString() + `"], "scheduled_date": "` +
				tt.date + `", "payment_method": "ach"}`
			req := httptest.NewRequest("POST", "/payouts/schedule", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(common.HeaderActorID, "user:broker-ops")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSettle_InvalidPayoutID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/payouts/not-a-uuid/settle",
		strings.NewReader(`{"outcome": "paid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.HeaderActorID, "user:finance")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettle_MissingActorHeader(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/payouts/"+uuid.NewString()+"/settle",
		strings.NewReader(`{"outcome": "paid"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettle_InvalidOutcome(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/payouts/"+uuid.NewString()+"/settle",
		strings.NewReader(`{"outcome": "refunded"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.HeaderActorID, "user:finance")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGet_InvalidPayoutID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/payouts/not-a-uuid", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
