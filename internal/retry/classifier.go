package retry

import (
	"errors"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Classifier reports whether err is transient and the operation may succeed
// when tried again.
type Classifier func(err error) bool

// IsLocked classifies a lock held by another run as transient.
func IsLocked(err error) bool {
	return errors.Is(err, upmprep.ErrLocked)
}
