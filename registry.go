package interpress

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// DefaultMaxSinks bounds sink ids when no RegistryOptions are given.
const DefaultMaxSinks = 64

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// MaxSinks is the exclusive upper bound on sink ids. Zero means DefaultMaxSinks.
	MaxSinks int
}

// Registry records, per sink id, whether the Interpress header has already
// been written. Entries appear on first selection and are never removed;
// closing a sink only clears its flag so the id can start a fresh master.
//
// A Registry is safe for concurrent use and may be shared by several Writers.
type Registry struct {
	maxSinks int
	flags    *xsync.Map[int, bool]
}

// NewRegistry creates an empty Registry. A nil options uses DefaultMaxSinks.
func NewRegistry(options *RegistryOptions) *Registry {
	maxSinks := DefaultMaxSinks
	if options != nil && options.MaxSinks > 0 {
		maxSinks = options.MaxSinks
	}
	return &Registry{
		maxSinks: maxSinks,
		flags:    xsync.NewMap[int, bool](),
	}
}

// MaxSinks returns the exclusive upper bound on sink ids.
func (r *Registry) MaxSinks() int { return r.maxSinks }

// Len returns the number of sink ids ever selected.
func (r *Registry) Len() int { return r.flags.Size() }

func (r *Registry) check(id int) error {
	if id < 0 || id >= r.maxSinks {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSinkID, id, r.maxSinks)
	}
	return nil
}

// Initialized reports whether the header has been written to id since it was last closed.
func (r *Registry) Initialized(id int) bool {
	initialized, _ := r.flags.Load(id)
	return initialized
}

// MarkInitialized records id as carrying a header, so the next selection writes none.
func (r *Registry) MarkInitialized(id int) {
	r.flags.Store(id, true)
}

// Reset clears the flag for id; the next selection writes the header again.
func (r *Registry) Reset(id int) {
	r.flags.Store(id, false)
}

// initialize marks id and reports whether it was uninitialized before.
func (r *Registry) initialize(id int) bool {
	previous, loaded := r.flags.LoadAndStore(id, true)
	return !loaded || !previous
}
