// Package version reports the build version of seqkit commands.
//
// Version and commit are set at compile time via -ldflags, and fall back to
// the VCS stamp the Go toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0" ./cmd/seqstat
package version
