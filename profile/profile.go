package profile

// Profiler configures runtime self-profiling. The zero value never profiles.
type Profiler struct {
	// Mode selects the profile to collect; see [Modes] for valid values.
	// An empty or unrecognized mode disables profiling.
	Mode string

	// Path is the output directory for profile files.
	Path string

	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If build tag pprof or Mode are unset, Start returns a no-op implementation.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
