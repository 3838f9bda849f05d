package history

import (
	"context"
	"time"
)

// Recorder stores idle samples.
type Recorder interface {
	Record(ctx context.Context, sample *Sample) error
	Close() error
}

// Repository defines the interface for sample storage
type Repository interface {
	Insert(ctx context.Context, sample *Sample) error
	Close() error
}

// Sample is one idle query outcome.
type Sample struct {
	Timestamp     time.Time
	RawMillis     uint64
	Millis        uint64
	VendorRelease uint32
	Gated         bool
}
