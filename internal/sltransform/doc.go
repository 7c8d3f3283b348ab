// Package sltransform implements the scattered-light correction math.
//
// A snapshot's counts image is corrected by dividing out a transformed copy
// of its scattered-light template. The transform has two tunable scalars: an
// exponent that sharpens the template's contrast and a flattening factor
// that pulls it back toward its mean. Both are chosen by eye in the
// interactive fit loop; this package is the deterministic part.
package sltransform
