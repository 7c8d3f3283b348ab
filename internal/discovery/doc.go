// Package discovery locates the observations and filters present on disk.
//
// The layout follows the UVOT archive conventions: each observation is an
// 11-character folder whose images live under <obs>/uvot/image/, and every
// file name embeds the observation ID and the two-character band code. A
// filter exists for an observation when its sky image file is present; the
// scattered-light template, LSS-corrected counts image, and parameter file
// are then found by fixed name substitution rather than by searching.
package discovery
