// Package client talks to the prepaid backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering the
//     kiosk endpoints (account view/create/modify, money view/add, last
//     unknown code), the scanner endpoints (code_exists, payment/perform) and
//     the superuser admin endpoints (add_drink, modify with superuser password).
//  2. A concrete HTTP implementation (see HTTPClient) that posts
//     form-encoded bodies, tags every request with an X-Request-ID and
//     decodes the backend's tuple-shaped JSON replies.
//
// # Error Handling
//
// Any non-2xx reply becomes a *RequestError whose message is the response
// body verbatim; the backend has no structured error codes. Transport
// failures wrap ErrUnavailable, undecodable bodies wrap
// ErrUnexpectedResponse. UserMessage turns any of these into the text shown
// on the kiosk.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
