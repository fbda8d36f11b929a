package zpk

import "errors"

// ErrConjugateSymmetry reports a root set in which some complex value has
// no conjugate partner within tolerance.
var ErrConjugateSymmetry = errors.New("zpk: roots are not conjugate-symmetric")
