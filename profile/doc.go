// Package profile wires optional pprof profiling into CLI commands. A
// [Config] registers the profiling flags, and the [Profiler] it creates
// brackets a command run: CPU profiling spans Start to Stop, and snapshot
// profiles are written at Stop.
package profile
