// Package grid provides the 2-D float64 image grid the correction pipeline
// works on, together with the smoothing and robust statistics the preview
// stretch needs.
//
// A Grid is a dense row-major array with a fixed width and height. Pixel
// values are plain float64s; UVOT counts images carry non-finite values in
// regions with no exposure, and the grid operations pass those through
// untouched.
package grid
