// Package version carries the build version, set with
// -ldflags "-X echopaint/internal/version.AppVersion=...".
package version

// AppVersion is the released version of echopaint.
var AppVersion = "0.1.0-dev"
