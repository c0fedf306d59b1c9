package shopify

import "errors"

// ErrRemote marks any failure reported by or while reaching the Admin API.
var ErrRemote = errors.New("remote api error")
