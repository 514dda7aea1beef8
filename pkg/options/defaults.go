package options

import "time"

const (
	// Represents the exclusive lower bound for a generation's semispace size in bytes (1MB).
	MinGenerationSize uint64 = 1 * 1024 * 1024

	// Represents the exclusive upper bound for a generation's semispace size in bytes (2GB).
	MaxGenerationSize uint64 = 2 * 1024 * 1024 * 1024

	// Specifies the default young-generation semispace size in bytes (64MB).
	DefaultYoungGenerationSize uint64 = 64 * 1024 * 1024

	// Specifies the default old-generation semispace size in bytes (512MB).
	DefaultOldGenerationSize uint64 = 512 * 1024 * 1024

	// Defines the default number of young-generation scavenges a survivor
	// endures before being promoted to the old generation.
	DefaultPromotionAge uint32 = 3

	// Defines the default per-sender mailbox capacity for every actor.
	DefaultMailboxCapacity = 64

	// Defines the default interval between idle collections.
	DefaultIdleCollectInterval = 5 * time.Minute
)

// Holds the default configuration settings for the runtime.
var defaultOptions = Options{
	YoungGeneration: &generationOptions{
		Size:         DefaultYoungGenerationSize,
		PromotionAge: DefaultPromotionAge,
	},
	OldGeneration: &generationOptions{
		Size: DefaultOldGenerationSize,
	},
	MailboxCapacity:     DefaultMailboxCapacity,
	IdleCollectInterval: DefaultIdleCollectInterval,
	InternMaps:          false,
}

func NewDefaultOptions() Options {
	opts := defaultOptions
	young := *defaultOptions.YoungGeneration
	old := *defaultOptions.OldGeneration
	opts.YoungGeneration = &young
	opts.OldGeneration = &old
	return opts
}
