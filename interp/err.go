package interp

import (
	"github.com/funge98/gofunge/translate"
)

var f = translate.From

// ErrConfig indicates a policy file that could not be read or
// decoded.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrTickLimit indicates a run aborted by the configured tick limit.
type ErrTickLimit int

func (err ErrTickLimit) Error() string {
	return f("tick limit %v exceeded", int(err))
}
