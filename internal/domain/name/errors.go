package name

import "errors"

// ErrUnparseable indicates the input normalizes to an empty name.
var ErrUnparseable = errors.New("unparseable input")
