package domain

import "errors"

// ErrNotFound is returned by sources when the API responds with HTTP 404.
// Callers check it with errors.Is to route to the not-found view.
var ErrNotFound = errors.New("not found")
