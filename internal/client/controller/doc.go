// Package controller is the kiosk's session and view controller.
//
// It owns the session credentials, the visible panel, and the values of the
// input fields, and runs the request flows (login, account creation and
// modification, top-up, history) against the backend. Rendering is left to
// a View; the controller only tells it what changed.
//
// Panels are exclusive. Entering a panel opens a cleanup scope, and anything
// started for the panel, like the RFID auto-fill poller, is torn down when
// the panel is left.
//
// Every flow carries a sequence number. When a flow is started again before
// the previous request came back, the older response is dropped and the
// call returns ErrStaleResponse.
package controller
