package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/datamodels/session"
)

func TestAuthClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds session.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-1",
			"user":  session.User{ID: "u1", Name: "Ada", Role: session.RoleBuyer},
		})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)

	token, u, err := c.Login(context.Background(), session.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	require.NotNil(t, u)
	assert.Equal(t, session.RoleBuyer, u.Role)

	_, _, err = c.Login(context.Background(), session.Credentials{Email: "a@b.c", Password: "wrong"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsAuth())
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestAuthClientCurrentUserSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(session.User{ID: "u1", Name: "Ada", Role: session.RoleArtisan})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)

	u, err := c.CurrentUser(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, session.RoleArtisan, u.Role)

	_, err = c.CurrentUser(context.Background(), "stale")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestOrderClientCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var req order.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.IdempotencyKey)

		_ = json.NewEncoder(w).Encode(order.Order{
			ID:          "ord-9",
			Status:      "confirmed",
			TotalAmount: req.TotalAmount,
			Items:       req.Items,
		})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, time.Second)

	o, err := c.Create(context.Background(), "tok-1", &order.Request{
		Items: []order.Item{{
			ProductID: 1,
			Name:      "woven basket",
			UnitPrice: decimal.RequireFromString("30.00"),
			Quantity:  3,
		}},
		TotalAmount:     decimal.RequireFromString("90.00"),
		ShippingAddress: "Ada Okafor\n12 Market Road\nOnitsha, Nigeria 430213",
		PaymentMethod:   "credit_card",
		IdempotencyKey:  "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-9", o.ID)
	assert.Equal(t, "confirmed", o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("90.00")))
}

func TestUpstreamErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message字段", `{"message":"insufficient stock"}`, "insufficient stock"},
		{"msg字段", `{"msg":"rate limited"}`, "rate limited"},
		{"error字段", `{"error":"internal"}`, "internal"},
		{"非JSON响应体", `<html>502 Bad Gateway</html>`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewOrderClient(srv.URL, time.Second)
			_, err := c.Get(context.Background(), "tok-1", "ord-1")

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	// 端口无人监听，触发传输层错误
	c := NewOrderClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := c.Get(context.Background(), "tok-1", "ord-1")
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "传输层失败不应伪装成上游响应")
}
