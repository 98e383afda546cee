package profile

// Profiler configures the runtime profiler.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Start starts profiling in p.Mode, writing to p.Path, and returns a value
// whose Stop method ends it.
//
// Without the pprof build tag, or with an empty or unknown mode, Start does
// nothing. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return enabled }

type ignore struct{}

func (ignore) Stop() {}
