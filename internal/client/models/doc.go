// Package models defines the client-side data shapes of the prepaid kiosk:
// the session credentials, the backend's tuple-encoded responses and the
// UI panel/field identifiers shared by the controller and its front ends.
package models
