package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barangayph/barangay-records-api/api"
)

func TestRevokeTokenMissingBearer(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	if err != nil {
		t.Fatal(err)
	}
	// a basic-auth client hitting logout carries no bearer token
	req.SetBasicAuth("staff@barangayrecords.ph", "hunter2")

	rr := httptest.NewRecorder()
	http.HandlerFunc(api.RevokeToken).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing bearer token")
}

func TestRevokeTokenNoAuthorizationHeader(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(api.RevokeToken).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
