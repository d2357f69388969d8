package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type fulfillmentServiceMock struct {
	ownCalls  []string
	buyCalls  []string
	assignErr error
}

func (m *fulfillmentServiceMock) AssignOwn(ctx context.Context, requestID string, req dto.AssignOwnRequest) error {
	m.ownCalls = append(m.ownCalls, requestID)
	return m.assignErr
}

func (m *fulfillmentServiceMock) AssignRent(ctx context.Context, requestID string, req dto.AssignRentRequest) error {
	return m.assignErr
}

func (m *fulfillmentServiceMock) AssignBuy(ctx context.Context, requestID string) error {
	m.buyCalls = append(m.buyCalls, requestID)
	return m.assignErr
}

func (m *fulfillmentServiceMock) UpdateBuyDetails(ctx context.Context, assignmentID string, req dto.UpdateBuyDetailsRequest) error {
	return m.assignErr
}

func (m *fulfillmentServiceMock) MarkCompleted(ctx context.Context, effectiveID string) error {
	return m.assignErr
}

func (m *fulfillmentServiceMock) ReturnToPending(ctx context.Context, effectiveID string) error {
	return m.assignErr
}

func TestFulfillmentHandlerAssignOwn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &fulfillmentServiceMock{}
	handler := NewFulfillmentHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
	}})
	req, _ := http.NewRequest(http.MethodPost, "/requests/req-1/assign/own", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.AssignOwn(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"req-1"}, mock.ownCalls)
}

func TestFulfillmentHandlerAssignOwnEmptyBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFulfillmentHandler(&fulfillmentServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/requests/req-1/assign/own", bytes.NewReader([]byte(`{"items":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.AssignOwn(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFulfillmentHandlerAssignBuy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &fulfillmentServiceMock{}
	handler := NewFulfillmentHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/requests/req-1/assign/buy", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.AssignBuy(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"req-1"}, mock.buyCalls)
}

func TestFulfillmentHandlerAssignRentOversized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFulfillmentHandler(&fulfillmentServiceMock{
		assignErr: appErrors.Clone(appErrors.ErrValidation, "assignment batch exceeds remaining quantity"),
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.AssignRentRequest{Durations: []int{6, 12}})
	req, _ := http.NewRequest(http.MethodPost, "/requests/req-1/assign/rent", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.AssignRent(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFulfillmentHandlerReturnToPending(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFulfillmentHandler(&fulfillmentServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/effective/as-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "as-1"}}

	handler.ReturnToPending(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
