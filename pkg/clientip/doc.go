// Package clientip derives the originating client address of a request that
// reached the service through one or more proxies.
//
// FromHeaders consults, in order:
//
//  1. X-Forwarded-For
//  2. X-Vercel-Forwarded-For
//  3. X-Real-IP
//  4. CF-Connecting-IP
//
// and takes the first comma-separated value of the first header that has
// one. When no header is usable it returns Unknown, so every request still
// maps to a rate-limit identifier.
//
// GetIP additionally falls back to the TCP peer address, and Middleware
// stores its result in the request context for handlers that need it.
//
// Header values are client controlled. Treat the result as an identifier
// for throttling, never as an authenticated address.
package clientip
