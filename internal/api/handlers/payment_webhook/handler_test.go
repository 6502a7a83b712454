package payment_webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	confirmPayment "github.com/m04kA/TRV-PlanService/internal/usecase/confirm_payment"
)

type fakeUseCase struct {
	req    *confirmPayment.Request
	result *confirmPayment.Result
	err    error
	calls  int
}

func (f *fakeUseCase) Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Result, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doWebhook(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

const validBody = `{
	"type": "checkout.session.completed",
	"data": {
		"sessionId": "cs_test_1",
		"paymentIntentId": "pi_123",
		"metadata": {"planId": "42"}
	}
}`

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{result: &confirmPayment.Result{Activated: true, EventCreated: true}}

	rec := doWebhook(t, uc, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, uc.calls)
	assert.Equal(t, int64(42), uc.req.PlanID)
	assert.Equal(t, "cs_test_1", uc.req.SessionReference)
	assert.Equal(t, "pi_123", uc.req.PaymentIntentID)
}

// Провайдер доставляет уведомления at-least-once: любой исход, кроме 200,
// провоцирует ретраи, поэтому хендлер подтверждает даже мусорные запросы
func TestHandle_AlwaysRespondsOK(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		ucErr       error
		wantExecute bool
	}{
		{
			name: "malformed json",
			body: `{"type": "checkout`,
		},
		{
			name: "foreign event type",
			body: `{"type": "invoice.paid", "data": {"sessionId": "cs_1", "metadata": {"planId": "42"}}}`,
		},
		{
			name: "missing planId metadata",
			body: `{"type": "checkout.session.completed", "data": {"sessionId": "cs_1", "metadata": {}}}`,
		},
		{
			name: "non-numeric planId",
			body: `{"type": "checkout.session.completed", "data": {"sessionId": "cs_1", "metadata": {"planId": "abc"}}}`,
		},
		{
			name: "negative planId",
			body: `{"type": "checkout.session.completed", "data": {"sessionId": "cs_1", "metadata": {"planId": "-5"}}}`,
		},
		{
			name:        "use case failure is absorbed",
			body:        validBody,
			ucErr:       errors.New("db down"),
			wantExecute: true,
		},
		{
			name:        "unknown plan is absorbed",
			body:        validBody,
			ucErr:       confirmPayment.ErrPlanNotFound,
			wantExecute: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr, result: &confirmPayment.Result{}}

			rec := doWebhook(t, uc, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			if tt.wantExecute {
				assert.Equal(t, 1, uc.calls)
			} else {
				assert.Zero(t, uc.calls, "use case must not run for unprocessable notifications")
			}
		})
	}
}
