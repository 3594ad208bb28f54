package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := zerolog.Nop()
	return NewClient(srv.URL, 5*time.Second, StaticToken(token), &logger)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"user":{"id":1,"email":"a@b.c"}}`))
	}, "tok-123")

	if _, err := NewUserClient(c).Profile(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_MapsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}, "stale")

	_, err := NewUserClient(c).Balance(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestClient_SurfacesUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"insufficient funds"}`))
	}, "tok")

	_, err := NewTopUpClient(c).CreateOrder(context.Background(), gateway.CreateOrderRequest{Amount: 50000, PaymentMethod: "QRIS"})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got: %v", err)
	}
	if want := "insufficient funds"; err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("expected error to carry %q, got: %v", want, err)
	}
}

func TestTopUpClient_CreateOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/topup/create" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"success": true,
			"data": {
				"orderId": "TU-001",
				"amount": 50000,
				"totalAmount": 51000,
				"paymentFee": 500,
				"systemFee": 500,
				"paymentMethod": "QRIS",
				"payment": {"qrString": "000201qr"},
				"expiresAt": "2026-01-05T12:00:00Z"
			}
		}`))
	}, "tok")

	order, err := NewTopUpClient(c).CreateOrder(context.Background(), gateway.CreateOrderRequest{Amount: 50000, PaymentMethod: "QRIS"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if order.OrderID != "TU-001" || order.TotalAmount != 51000 {
		t.Errorf("unexpected order decoded: %+v", order)
	}
	if order.Payment.QRString != "000201qr" {
		t.Errorf("expected QR payload, got %+v", order.Payment)
	}
}

func TestTopUpClient_PaymentStatusMapping(t *testing.T) {
	cases := []struct {
		raw  string
		want model.PaymentState
	}{
		{"PENDING", model.PaymentPending},
		{"PAID", model.PaymentPaid},
		{"SUCCESS", model.PaymentPaid},
		{"EXPIRED", model.PaymentFailed},
		{"something-new", model.PaymentPending},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"status":"` + tc.raw + `","orderId":"TU-001","amount":50000,"paymentMethod":"QRIS"}`))
			}, "tok")
			st, err := NewTopUpClient(c).PaymentStatus(context.Background(), "TU-001")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if st.State != tc.want {
				t.Errorf("status %q mapped to %q, want %q", tc.raw, st.State, tc.want)
			}
		})
	}
}

func TestMetricEndpoint(t *testing.T) {
	cases := map[string]string{
		"/topup/options":                       "/topup/options",
		"/topup/payment-status/TU-0042":        "/topup/payment-status/:id",
		"/products/categories/7/providers":     "/products/categories/:id/providers",
		"/user/profile":                        "/user/profile",
	}
	for in, want := range cases {
		if got := metricEndpoint(in); got != want {
			t.Errorf("metricEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}
