package xmlpull

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var errNilReader = errors.New("nil XML reader")

func wrapConstructionError(err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithStack(err)
}
