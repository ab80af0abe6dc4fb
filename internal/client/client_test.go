package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, status int, body string) (*Client, *[]request) {
	t.Helper()
	var seen []request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req request
		_ = json.Unmarshal(raw, &req)
		seen = append(seen, req)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	c, err := New(nil, Config{Endpoint: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return c, &seen
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(nil, Config{Endpoint: "  "})
	require.Error(t, err)
}

func TestUpdateLowStockProducts(t *testing.T) {
	c, seen := stubServer(t, http.StatusOK, `{"data":{"updateLowStockProducts":{
		"message":"Low stock products updated successfully.",
		"updatedProducts":["Pen: 12","Cable: 19"]}}}`)

	res, err := c.UpdateLowStockProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Low stock products updated successfully.", res.Message)
	assert.Equal(t, []string{"Pen: 12", "Cable: 19"}, res.UpdatedProducts)
	require.Len(t, *seen, 1)
	assert.Contains(t, (*seen)[0].Query, "updateLowStockProducts")
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
		code   string
	}{
		{"non 2xx", http.StatusBadGateway, `oops`, ErrTransport, ""},
		{"garbage body", http.StatusOK, `<html>`, ErrParse, ""},
		{"null data", http.StatusOK, `{"data":null}`, ErrParse, ""},
		{"missing field", http.StatusOK, `{"data":{"totalCustomers":1,"totalOrders":2}}`, ErrParse, ""},
		{"remote errors", http.StatusOK, `{"errors":[{"message":"boom","extensions":{"code":"INTERNAL"}}],"data":null}`, ErrRemote, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := stubServer(t, tt.status, tt.body)
			_, err := c.Totals(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var ce *Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "totals", ce.Op)
			assert.Equal(t, tt.code, ce.Code)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(nil, Config{Endpoint: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Totals(context.Background())
	assert.ErrorIs(t, err, ErrTransport)

	_, err = c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestPingReportsStatus(t *testing.T) {
	c, seen := stubServer(t, http.StatusServiceUnavailable, ``)
	status, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "{ hello }", (*seen)[0].Query)
}

func TestRecentOrdersSendsSince(t *testing.T) {
	c, seen := stubServer(t, http.StatusOK, `{"data":{"allOrders":{"edges":[
		{"node":{"id":"4","orderDate":"2025-03-10T09:00:00Z","customer":{"email":"a@x.com"}}},
		{"node":{"id":"5","orderDate":"2025-03-11T09:00:00Z","customer":null}}]}}}`)

	since := time.Date(2025, 3, 7, 12, 0, 0, 0, time.FixedZone("X", 3600))
	got, err := c.RecentOrders(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "a@x.com", got[0].CustomerEmail)
	assert.Empty(t, got[1].CustomerEmail)
	assert.Equal(t, "2025-03-07T11:00:00Z", (*seen)[0].Variables["since"])
}

func TestCreateCustomerOmitsNilPhone(t *testing.T) {
	c, seen := stubServer(t, http.StatusOK, `{"data":{"createCustomer":{
		"customer":{"id":"1","name":"Alice","email":"alice@example.com","phone":null},
		"message":"Customer created successfully"}}}`)

	cust, msg, err := c.CreateCustomer(context.Background(), CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "1", cust.ID)
	assert.Equal(t, "Customer created successfully", msg)
	_, has := (*seen)[0].Variables["phone"]
	assert.False(t, has)
}
