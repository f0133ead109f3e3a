package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"tobacco-catalog-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.DuplicateName("Adalya"), fiber.StatusConflict},
		{apperror.NotFound("Adalya"), fiber.StatusNotFound},
		{apperror.Validation("text", errors.New("required")), fiber.StatusUnprocessableEntity},
		{apperror.Transport("db", errors.New("eof")), fiber.StatusServiceUnavailable},
		{fiber.ErrBadRequest, fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return apperror.NotFound("Adalya")
	})
	app.Get("/down", func(ctx *fiber.Ctx) error {
		return apperror.Transport("db", errors.New("dial tcp 10.0.0.1:5432"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body BaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusNotFound, body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body = BaseResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Message, "10.0.0.1")
}

type sampleRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(sampleRequest{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	assert.NoError(t, ValidateRequest(sampleRequest{UserId: "1"}))
}
