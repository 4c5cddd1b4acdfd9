// Package buildinfo provides build information for memkv.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/memkv/internal/infra/buildinfo.Version=v1.0.0"
//
// The Go version is read from the running binary.
package buildinfo
