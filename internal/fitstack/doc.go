// Package fitstack reads and writes the multi-extension FITS stacks the
// correction pipeline consumes: the LSS-corrected sky counts image, the
// scattered-light template image, and the corrected output stack.
//
// A stack's extension 0 is a primary placeholder; extensions 1..N each hold
// one exposure ("snapshot"). Snapshots are keyed by their TSTART header
// value, the most unique identifier a UVOT exposure carries.
package fitstack
