package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodhub/gateway/internal/gateway"
	"foodhub/gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{StorefrontSvcURL: "http://storefront:8081"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, gateway.ServiceName, body["service"])
	assert.Equal(t, "http://storefront:8081", body["storefront"])
}

func TestGateway_RouteHandler_Proxy(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		role         string
		wantURL      string
		expectedCode int
	}{
		{name: "public_api", method: http.MethodGet, path: "/api/foods?category=rice", wantURL: "http://storefront/api/foods?category=rice", expectedCode: http.StatusOK},
		{name: "order_action", method: http.MethodPost, path: "/api/orders/o1/cancel", wantURL: "http://storefront/api/orders/o1/cancel", expectedCode: http.StatusOK},
		{name: "admin_allowed", method: http.MethodGet, path: "/api/admin/dashboard", role: "admin", wantURL: "http://storefront/api/admin/dashboard", expectedCode: http.StatusOK},
		{name: "admin_role_case_insensitive", method: http.MethodPost, path: "/api/admin/orders/o1/accept", role: "Admin", wantURL: "http://storefront/api/admin/orders/o1/accept", expectedCode: http.StatusOK},
		{name: "admin_missing_role", method: http.MethodGet, path: "/api/admin/dashboard", expectedCode: http.StatusForbidden},
		{name: "admin_wrong_role", method: http.MethodDelete, path: "/api/admin/users/u1", role: "user", expectedCode: http.StatusForbidden},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{StorefrontSvcURL: "http://storefront"}, mockClient)

			if testCase.wantURL != "" {
				mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
					return req.URL.String() == testCase.wantURL && req.Method == testCase.method
				})).Return(okResponse(`{"ok":true}`), nil).Once()
			}

			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			if testCase.role != "" {
				req.Header.Set(gateway.RoleHeader, testCase.role)
			}
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
			if testCase.expectedCode == http.StatusForbidden {
				assert.Contains(t, rr.Body.String(), "admin role required")
			}
		})
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{StorefrontSvcURL: "http://invalid"}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "storefront unavailable")
}

func TestGateway_ProxyRequest_ForwardsHeadersAndBody(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{StorefrontSvcURL: "http://storefront/"}, mockClient)

	var forwarded []byte
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://storefront/api/admin/foods" &&
			req.Header.Get(gateway.RoleHeader) == "admin"
	})).Run(func(args mock.Arguments) {
		forwarded, _ = io.ReadAll(args.Get(0).(*http.Request).Body)
	}).Return(&http.Response{
		StatusCode: http.StatusCreated,
		Body:       io.NopCloser(strings.NewReader(`{"id":"f9"}`)),
		Header:     http.Header{"X-Request-Id": []string{"abc"}},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/foods", strings.NewReader(`{"name":"Goi Cuon"}`))
	req.Header.Set(gateway.RoleHeader, "admin")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "abc", rr.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"id":"f9"}`, rr.Body.String())
	assert.Equal(t, `{"name":"Goi Cuon"}`, string(forwarded))
}

func TestGateway_RouteHandler_Frontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>FoodHub</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('app')"), 0o600))

	gw := gateway.NewGateway(gateway.Config{FrontendDir: dir}, nil)

	tests := []struct {
		name         string
		path         string
		expectedBody string
	}{
		{name: "root", path: "/", expectedBody: "FoodHub"},
		{name: "asset", path: "/app.js", expectedBody: "console.log"},
		{name: "client_route", path: "/review?order_id=o1", expectedBody: "FoodHub"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, testCase.path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.expectedBody)
		})
	}
}
