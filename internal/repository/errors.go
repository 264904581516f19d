package repository

import "errors"

// ErrEdgeNotPending is returned by Accept when the edge already left PENDING
var ErrEdgeNotPending = errors.New("friend edge is not pending")
