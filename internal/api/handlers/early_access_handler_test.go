package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiltlabs/engineer-on-demand/internal/api/handlers"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

type stubEarlyAccessService struct {
	registered []*entities.EarlyAccessRequest
	err        error
	listing    []*entities.EarlyAccessRequest
}

func (s *stubEarlyAccessService) Register(ctx context.Context, email, zipCode string, requestedSkills []string) (*entities.EarlyAccessRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	request := &entities.EarlyAccessRequest{ID: "ea-1", Email: email, ZipCode: zipCode, RequestedSkills: requestedSkills}
	s.registered = append(s.registered, request)
	return request, nil
}

func (s *stubEarlyAccessService) List(ctx context.Context, zipCode string) ([]*entities.EarlyAccessRequest, error) {
	return s.listing, nil
}

func TestEarlyAccessHandler_Register_Success(t *testing.T) {
	service := &stubEarlyAccessService{}
	handler := handlers.NewEarlyAccessHandler(service)

	body := `{"email":"dana@example.com","zipCode":"83001","requestedSkills":["terraform"]}`
	req := httptest.NewRequest("POST", "/api/early-access", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, service.registered, 1)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "ea-1", response["id"])
	assert.NotEmpty(t, response["message"])
}

func TestEarlyAccessHandler_Register_Duplicate(t *testing.T) {
	service := &stubEarlyAccessService{
		err: apperrors.NewConflictError("this email is already registered for early access"),
	}
	handler := handlers.NewEarlyAccessHandler(service)

	body := `{"email":"dana@example.com","zipCode":"83001"}`
	req := httptest.NewRequest("POST", "/api/early-access", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEarlyAccessHandler_List(t *testing.T) {
	service := &stubEarlyAccessService{
		listing: []*entities.EarlyAccessRequest{
			{ID: "ea-1", Email: "dana@example.com", ZipCode: "83001"},
			{ID: "ea-2", Email: "lee@example.com", ZipCode: "83001"},
		},
	}
	handler := handlers.NewEarlyAccessHandler(service)

	req := httptest.NewRequest("GET", "/api/early-access?zipCode=83001", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Requests []entities.EarlyAccessRequest `json:"requests"`
		Count    int                           `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}
