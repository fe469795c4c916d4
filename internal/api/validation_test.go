package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationBody struct {
	Plate string `validate:"required"`
	Class string `validate:"omitempty,oneof=standard heavy"`
}

func TestValidationErrors(t *testing.T) {
	err := validator.New().Struct(reservationBody{Class: "bus"})
	require.Error(t, err)

	details := ValidationErrors(err)
	require.Len(t, details, 2)
	assert.Equal(t, "Plate", details[0].Field)
	assert.Equal(t, "Plate is required", details[0].Message)
	assert.Equal(t, "oneof", details[1].Tag)
	assert.Equal(t, "Class must be one of: standard heavy", details[1].Message)

	assert.Nil(t, ValidationErrors(errors.New("unexpected EOF")))
}

func TestRespondBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondBindError(c, validator.New().Struct(reservationBody{}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Len(t, resp.Details, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondBindError(c, errors.New("invalid character 'x'"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid character 'x'"}`, w.Body.String())
}
