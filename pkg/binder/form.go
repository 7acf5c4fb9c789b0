package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data bodies. Only body values are bound; query parameters
// are ignored. Uploaded files are not supported.
//
// Supported struct tags:
//   - `form:"name"` binds to form field "name"
//   - `form:"-"` skips the field
//
// Untagged exported fields bind to their lower-cased field name.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var values map[string][]string

		switch mediaType := MediaType(r); mediaType {
		case "":
			return fmt.Errorf("%w: expected %s or %s", ErrMissingContentType, MIMEApplicationForm, MIMEMultipartForm)

		case MIMEApplicationForm:
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm

		case MIMEMultipartForm:
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s, expected %s or %s", ErrUnsupportedMediaType, mediaType, MIMEApplicationForm, MIMEMultipartForm)
		}

		return bindToStruct(v, "form", values, ErrFailedToParseForm)
	}
}
