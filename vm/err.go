package vm

import (
	"github.com/funge98/gofunge/translate"
)

var f = translate.From

// ErrPolicyInvalid reports an unrecognized policy name.
type ErrPolicyInvalid string

func (err ErrPolicyInvalid) Error() string {
	return f("'%v' is not an unknown-instruction policy", string(err))
}
