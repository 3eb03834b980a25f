// SPDX-License-Identifier: MIT

package direct

import "errors"

// ErrInvalidArgument indicates m < 1, n < 0, or k outside [0, n].
var ErrInvalidArgument = errors.New("direct: invalid argument")
