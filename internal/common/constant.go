// Package common contains shared constants and sentinel errors used across
// the prepaid kiosk, scanner and admin clients.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request correlation
// id on outbound backend calls.
const RequestIDHeaderName = "X-Request-ID"

// FormContentType is the body encoding the backend expects for every POST.
const FormContentType = "application/x-www-form-urlencoded"
