// Package profile provides optional runtime profiling for the altc compiler
// using [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof .
//	altc --pprof-mode cpu --pprof-dir ./profiles song.altc
//
// Without the tag every operation is a no-op and [Modes] is empty.
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread and trace. Profile files are written to the configured directory
// (by default the pprof directory under the user cache directory) and can be
// inspected with go tool pprof:
//
//	go tool pprof -http=: ./profiles/cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
