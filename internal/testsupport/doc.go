// Package testsupport provides shared fixtures for tests: tiny
// multi-extension FITS stacks and pre-populated observation directory
// layouts matching the UVOT archive conventions.
package testsupport
