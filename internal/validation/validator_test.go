package validation

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentialPayload struct {
	Username string `json:"username" mod:"trim" validate:"required,min=6,max=15"`
	Password string `json:"password" validate:"required,min=8,max=20"`
}

type queryPayload struct {
	Order string `query:"order" mod:"upper" validate:"oneof=ASC DESC"`
	Page  int    `query:"page" validate:"min=1"`
	Take  int    `query:"take" validate:"min=1,max=50"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&credentialPayload{Username: "user00", Password: "11111111"})
	assert.NoError(t, err)
}

func TestValidate_TrimCollapsesWhitespace(t *testing.T) {
	v := New()

	payload := &credentialPayload{Username: "  user   00  ", Password: "11111111"}
	require.NoError(t, v.Validate(payload))
	assert.Equal(t, "user 00", payload.Username)
}

func TestValidate_UppercaseTransform(t *testing.T) {
	v := New()

	payload := &queryPayload{Order: "desc", Page: 1, Take: 10}
	require.NoError(t, v.Validate(payload))
	assert.Equal(t, "DESC", payload.Order)
}

func TestValidate_AggregatesViolations(t *testing.T) {
	v := New()

	err := v.Validate(&credentialPayload{Username: "abc", Password: ""})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	body, ok := he.Message.(echo.Map)
	require.True(t, ok)
	assert.Equal(t, "Bad Request", body["error"])

	messages, ok := body["message"].([]string)
	require.True(t, ok)
	assert.Len(t, messages, 2)
	assert.Contains(t, messages, "username must be longer than or equal to 6 characters")
	assert.Contains(t, messages, "password should not be empty")
}

func TestValidate_Bounds(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		payload queryPayload
		wantErr bool
	}{
		{"valid", queryPayload{Order: "ASC", Page: 1, Take: 10}, false},
		{"take at upper bound", queryPayload{Order: "ASC", Page: 1, Take: 50}, false},
		{"take over upper bound", queryPayload{Order: "ASC", Page: 1, Take: 51}, true},
		{"page below minimum", queryPayload{Order: "ASC", Page: 0, Take: 10}, true},
		{"unknown order", queryPayload{Order: "sideways", Page: 1, Take: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.payload
			err := v.Validate(&payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
