package relaypager

import (
	"github.com/rs/zerolog"
)

// Defaults fill option fields the caller left absent. Fields of the options
// always win over defaults.
type Defaults[T any] struct {
	// CursorLimit is used when CursorOptions.Limit is absent.
	CursorLimit Limit
	// PageLimit is used when PageOptions.Limit is absent.
	PageLimit Limit
	// IncludePageCount is used when PageOptions.IncludePageCount is nil.
	IncludePageCount bool
	// Codec is used when CursorOptions.Codec is nil. Defaults to IDCodec.
	Codec CursorCodec[T]
}

// Paginator paginates rows of one backend in cursor or page-number mode.
// It holds no per-call state and is safe for concurrent use.
type Paginator[T any] struct {
	backend  Backend[T]
	defaults Defaults[T]
	logger   zerolog.Logger
}

// New creates a paginator over backend. Logging is disabled until WithLogger
// is called.
func New[T any](backend Backend[T]) *Paginator[T] {
	return &Paginator[T]{
		backend: backend,
		logger:  zerolog.Nop(),
	}
}

// WithDefaults sets the defaults applied to absent option fields.
func (p *Paginator[T]) WithDefaults(defaults Defaults[T]) *Paginator[T] {
	if p == nil {
		p = New[T](nil)
	}

	p.defaults = defaults

	return p
}

// WithLogger sets the logger. Calls are logged at debug level only.
func (p *Paginator[T]) WithLogger(logger zerolog.Logger) *Paginator[T] {
	if p == nil {
		p = New[T](nil)
	}

	p.logger = logger

	return p
}

// GetDefaults returns the defaults as they are stored in Paginator.
func (p *Paginator[T]) GetDefaults() Defaults[T] {
	if p == nil {
		return Defaults[T]{}
	}

	return p.defaults
}

func (p *Paginator[T]) codec() CursorCodec[T] {
	if p.defaults.Codec != nil {
		return p.defaults.Codec
	}

	return IDCodec[T]{}
}
