package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid json", `{"name": "test"}`, false},
		{"unknown fields are ignored", `{"name": "test", "extra": 1}`, false},
		{"invalid json", `{"name": "test",}`, true},
		{"empty body", ``, true},
		{"trailing data", `{"name": "a"} {"name": "b"}`, true},
		{"wrong type", `{"name": 5}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.body))
			var target sample
			err := DecodeJSON(httptest.NewRecorder(), req, &target)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test", target.Name)
		})
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	body := `{"name": "` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	var target sample
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), req, &target), ErrInvalidJSON)
}

func TestValidateRequestUsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(sample{Email: "not-an-email"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := []string{}
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
}

type selfValidating struct{ called bool }

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	t.Parallel()

	v := &selfValidating{}
	require.NoError(t, ValidateRequest(v))
	assert.True(t, v.called)
}
