// Package binder decodes HTTP request bodies into structs.
//
// Two binders are provided, both with the signature
// func(r *http.Request, v any) error:
//
//   - JSON(): application/json bodies, capped at DefaultMaxJSONSize and
//     rejected when data follows the first value.
//   - Form(): application/x-www-form-urlencoded and multipart/form-data
//     bodies, bound through `form:"name"` struct tags.
//
// Example:
//
//	type ContactRequest struct {
//		Name  string `json:"name" form:"name"`
//		Email string `json:"email" form:"email"`
//	}
//
//	var req ContactRequest
//	if err := binder.JSON()(r, &req); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseJSON) ...
//	}
//
// Every error wraps one of the sentinel errors in errors.go so callers can
// map them to a status code. Size limits beyond the defaults belong in
// http.MaxBytesReader or middleware.
package binder
