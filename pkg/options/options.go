// Package options provides data structures and functions for configuring
// the runtime's heap and actor subsystems. It defines the parameters
// that control generation sizing, promotion behavior, and actor mailbox
// capacity, keeping those tunables separate from the code that uses them.
package options

import (
	"time"

	"github.com/nilslef/selfrt/pkg/errors"
)

// Defines configurable parameters for a single heap generation.
// It provides fine-grained control over generation behavior, performance,
// and memory utilization.
type generationOptions struct {
	// Defines the maximum size a generation's semispace can grow to.
	// When a reservation would exceed this size, a collection runs first.
	//
	//  - Default: 64MB (young), 512MB (old)
	//  - Maximum: below 2GB (the With* setters reject 2GB itself)
	//  - Minimum: above 1MB (the With* setters reject 1MB itself)
	Size uint64 `json:"maxGenerationSize"`

	// Defines how many scavenges a surviving object endures in this
	// generation before it is promoted to the next one. Only meaningful
	// for the young generation.
	//
	// Default: 3
	PromotionAge uint32 `json:"promotionAge"`
}

// Defines the configuration parameters for the runtime.
// It provides control over heap, actor, and lookup-engine behavior.
type Options struct {
	// Configures the young generation, scavenged frequently.
	YoungGeneration *generationOptions `json:"youngGeneration"`

	// Configures the old generation, which survivors are promoted into.
	OldGeneration *generationOptions `json:"oldGeneration"`

	// Per-sender mailbox capacity setting. internal/actorsys does not read
	// it: mailboxes are unbounded and Send never blocks.
	//
	// Default: 64
	MailboxCapacity int `json:"mailboxCapacity"`

	// Interval setting for forced collections absent reservation pressure.
	// No component of the runtime reads it; no idle collection is
	// scheduled.
	//
	// Default: 5m
	IdleCollectInterval time.Duration `json:"idleCollectInterval"`

	// Controls whether structurally identical Maps are interned into a
	// single shared instance. The runtime does not implement interning
	// today (see DESIGN.md); this flag is reserved for that optimization
	// and has no effect on lookup semantics either way.
	//
	// Default: false
	InternMaps bool `json:"internMaps"`
}

// OptionFunc is a function type that modifies the runtime's configuration.
// It reports a *errors.ValidationError when the caller-supplied value is
// outside the acceptable range, rather than silently clamping or dropping
// it: a misconfigured heap size should fail fast at construction, not
// surface later as a confusing OutOfMemory deep in a Collect cycle.
type OptionFunc func(*Options) error

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) error {
		opts := NewDefaultOptions()
		o.YoungGeneration = opts.YoungGeneration
		o.OldGeneration = opts.OldGeneration
		o.MailboxCapacity = opts.MailboxCapacity
		o.IdleCollectInterval = opts.IdleCollectInterval
		o.InternMaps = opts.InternMaps
		return nil
	}
}

// Sets the maximum size of the young generation's semispace.
func WithYoungGenerationSize(size uint64) OptionFunc {
	return func(o *Options) error {
		if size <= MinGenerationSize || size >= MaxGenerationSize {
			return errors.NewFieldRangeError("youngGenerationSize", size, MinGenerationSize, MaxGenerationSize)
		}
		o.YoungGeneration.Size = size
		return nil
	}
}

// Sets the maximum size of the old generation's semispace.
func WithOldGenerationSize(size uint64) OptionFunc {
	return func(o *Options) error {
		if size <= MinGenerationSize || size >= MaxGenerationSize {
			return errors.NewFieldRangeError("oldGenerationSize", size, MinGenerationSize, MaxGenerationSize)
		}
		o.OldGeneration.Size = size
		return nil
	}
}

// Sets how many young-generation scavenges a survivor endures before promotion.
func WithPromotionAge(age uint32) OptionFunc {
	return func(o *Options) error {
		if age == 0 {
			return errors.NewFieldRangeError("promotionAge", age, 1, nil)
		}
		o.YoungGeneration.PromotionAge = age
		return nil
	}
}

// Sets Options.MailboxCapacity.
func WithMailboxCapacity(capacity int) OptionFunc {
	return func(o *Options) error {
		if capacity <= 0 {
			return errors.NewFieldRangeError("mailboxCapacity", capacity, 1, nil)
		}
		o.MailboxCapacity = capacity
		return nil
	}
}

// Sets the idle-collection interval.
func WithIdleCollectInterval(interval time.Duration) OptionFunc {
	return func(o *Options) error {
		if interval <= 0 {
			return errors.NewFieldRangeError("idleCollectInterval", interval, time.Nanosecond, nil)
		}
		o.IdleCollectInterval = interval
		return nil
	}
}

// Enables or disables Map interning.
func WithMapInterning(enabled bool) OptionFunc {
	return func(o *Options) error {
		o.InternMaps = enabled
		return nil
	}
}
