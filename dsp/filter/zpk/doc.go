// Package zpk converts zero/pole/gain descriptions of a digital filter into
// cascades of second-order sections.
//
// Roots are first put into a canonical order with Pair, which keeps each
// complex value next to its conjugate. Split separates the paired values
// into one representative per conjugate pair and a set of real roots, and
// ToSOS turns both sets into quadratic factors:
//
//	complex c:     z² - 2·Re(c)·z + |c|²
//	reals r1, r2:  z² - (r1+r2)·z + r1·r2
//
// Denominators are monic. The gain is folded into the numerator of the
// first section only.
package zpk
