// Package store contains the client-side state containers. Each store owns a
// slice of fetched domain data plus loading and error flags, exposes action
// methods that call the backend and reconcile local state, and is safe for
// concurrent use. Stores are wired explicitly by the caller; there are no
// package-level singletons.
package store

import (
	"errors"

	"tastebite/internal/api"
)

// displayError turns a failed call into the message shown to the user: the
// first field-level detail if the backend sent one, then the backend's error
// message, then the caller's fallback. Transport failures fall through to the
// fallback.
func displayError(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if detail := apiErr.FirstDetail(); detail != "" {
			return detail
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
