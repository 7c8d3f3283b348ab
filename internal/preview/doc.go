// Package preview renders the fit loop's side-by-side comparison images.
//
// Each iteration produces one PNG: the smoothed original counts image on the
// left and the smoothed corrected image on the right, both log-stretched over
// the same display range so the operator can judge the correction. The file
// is overwritten in place every iteration, so any auto-reloading image viewer
// works as a live display.
package preview
