package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON creates a JSON binder function.
//
// Unknown fields are ignored so older clients keep working when a form
// gains or loses a field.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		mediaType := MediaType(r)
		if mediaType == "" {
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, MIMEApplicationJSON)
		}
		if mediaType != MIMEApplicationJSON {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, MIMEApplicationJSON)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		return nil
	}
}
