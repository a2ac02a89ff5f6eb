// Package discovery walks a project's source tree and reports the ORM
// document models, the API routes and the files to mirror into the output.
//
// The walk is read-only: Walker.Walk returns a Report and leaves every side
// effect to the caller. Entries in a Report are sorted by relative path, so
// the generated output never depends on directory listing order.
package discovery
