package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight/website/pkg/binder"
)

type contactRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Spend    string `json:"marketingSpend" form:"marketingSpend"`
	Consent  bool   `json:"consent" form:"consent"`
	Tags     []string
	Internal string `form:"-"`
}

func jsonRequest(contentType, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("binds body", func(t *testing.T) {
		t.Parallel()

		var got contactRequest
		err := binder.JSON()(jsonRequest("application/json; charset=utf-8",
			`{"name":"Ana","email":"ana@example.com","marketingSpend":"$5k","extra":true}`), &got)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "ana@example.com", got.Email)
		assert.Equal(t, "$5k", got.Spend)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"form content type", "application/x-www-form-urlencoded", `{}`, binder.ErrUnsupportedMediaType},
		{"malformed", "application/json", `{"name":`, binder.ErrFailedToParseJSON},
		{"wrong type", "application/json", `{"name":42}`, binder.ErrFailedToParseJSON},
		{"empty body", "application/json", ``, binder.ErrFailedToParseJSON},
		{"trailing data", "application/json", `{"name":"a"}{"name":"b"}`, binder.ErrFailedToParseJSON},
		{"too large", "application/json", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got contactRequest
			err := binder.JSON()(jsonRequest(tt.contentType, tt.body), &got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var got contactRequest
		err := binder.JSON()(jsonRequest("application/json", `{}`).WithContext(ctx), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestMediaType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        string
		isForm      bool
	}{
		{"", "", false},
		{"application/json", "application/json", false},
		{"Application/JSON; charset=UTF-8", "application/json", false},
		{"application/x-www-form-urlencoded", "application/x-www-form-urlencoded", true},
		{"multipart/form-data; boundary=abc", "multipart/form-data", true},
		{"text/plain", "text/plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			req := jsonRequest(tt.contentType, "")
			assert.Equal(t, tt.want, binder.MediaType(req))
			assert.Equal(t, tt.isForm, binder.IsForm(req))
		})
	}
}
