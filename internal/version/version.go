// internal/version/version.go
package version

// Version is stamped into --version output. Overridable via -ldflags.
var Version = "0.3.1"
