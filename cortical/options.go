package cortical

// DefaultNorm is the default inversion strength: almost pure energy-weighted
// division, with a small uniform floor keeping weakly covered bins stable.
const DefaultNorm = 0.9

// DefaultRefineSteps is the default number of conjugate-gradient steps the
// composed inverse spends polishing the energy-weighted estimate against
// the truncated filter system.
const DefaultRefineSteps = 16

type config struct {
	norm        float64
	refineSteps int
	progress    func(done, total int)
}

func defaultConfig() config {
	return config{norm: DefaultNorm, refineSteps: DefaultRefineSteps}
}

// Option configures a transform call.
type Option func(*config)

// WithNorm sets the inversion strength in [0, 1]: 1 divides purely by the
// accumulated filter energy, smaller values blend in a uniform floor. Values
// outside [0, 1] cause the inverse call to fail. Forward calls ignore it.
func WithNorm(norm float64) Option {
	return func(cfg *config) { cfg.norm = norm }
}

// WithRefineSteps sets the number of least-squares polish steps the
// composed inverse runs after the energy-weighted reconstruction. Zero
// disables the polish; negative values are treated as zero. Forward calls
// and single-axis inversion ignore it.
func WithRefineSteps(n int) Option {
	return func(cfg *config) { cfg.refineSteps = n }
}

// WithProgress installs a callback invoked once per processed channel with
// the number of channels done and the total. The callback must only produce
// side effects; it cannot alter the computation.
func WithProgress(fn func(done, total int)) Option {
	return func(cfg *config) { cfg.progress = fn }
}

func (cfg *config) report(done, total int) {
	if cfg.progress != nil {
		cfg.progress(done, total)
	}
}
