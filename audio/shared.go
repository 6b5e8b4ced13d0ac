package audio

import "sync"

var (
	sharedMu     sync.Mutex
	sharedOnce   sync.Once
	sharedOpts   Options
	sharedEngine *Engine
)

// Configure sets the options the shared engine is created with. It reports
// false once the engine exists, in which case the options are ignored.
func Configure(opts Options) bool {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedEngine != nil {
		return false
	}
	sharedOpts = opts
	return true
}

// Shared returns the process-wide engine, creating it on first use. Every
// caller gets the same engine for the life of the process.
func Shared() *Engine {
	sharedOnce.Do(func() {
		sharedMu.Lock()
		defer sharedMu.Unlock()
		sharedEngine = NewEngine(sharedOpts)
	})
	return sharedEngine
}
