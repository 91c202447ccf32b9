// Package constants provides shared configuration values used across the docktui application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "docktui.yaml"

	// ConfigEnvVar is the environment variable overriding the config file path
	ConfigEnvVar = "DOCKTUI_CONFIG"
)

// Log streaming defaults
const (
	// DefaultMaxLines is the default capacity of the log line buffer
	DefaultMaxLines = 2000

	// DefaultTail is the default number of lines requested when a stream starts
	DefaultTail = 200

	// DefaultSince is the default time window for requested logs
	DefaultSince = "15m"

	// DefaultSinceWindow is the fallback window when a since string fails to parse
	DefaultSinceWindow = 15 * time.Minute
)

// Timeout and duration defaults
const (
	// QueueDrainInterval is how often the consumer tick drains the log queue
	QueueDrainInterval = 100 * time.Millisecond

	// MaxQueueItemsPerTick bounds how many queued messages one tick may process
	MaxQueueItemsPerTick = 50

	// StopStreamTimeout bounds how long a waiting stop blocks on worker exit
	StopStreamTimeout = 2 * time.Second

	// NoLogsCheckDelay is how long a stack stream waits before reporting that
	// none of its containers have produced any logs
	NoLogsCheckDelay = 500 * time.Millisecond

	// FilterDebounce is how long filter input must be idle before it is applied
	FilterDebounce = 300 * time.Millisecond

	// DefaultRefreshInterval is how often the container inventory is refreshed
	DefaultRefreshInterval = 5 * time.Second
)

// Buffer sizes
const (
	// ScannerBufferSize is the initial buffer size for log line scanning
	ScannerBufferSize = 64 * 1024 // 64KB

	// ScannerMaxBufferSize is the maximum buffer size for log line scanning
	ScannerMaxBufferSize = 1024 * 1024 // 1MB

	// FanInBufferSize is the channel buffer between per-container readers and
	// the stack fan-in loop
	FanInBufferSize = 64
)
