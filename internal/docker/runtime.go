// Package docker adapts the Docker Engine API to the narrow surface the
// streaming core consumes.
package docker

import (
	"context"
	"io"
	"strings"
	"time"
)

// ComposeProjectLabel is the label compose places on every container that
// belongs to a stack.
const ComposeProjectLabel = "com.docker.compose.project"

// ContainerInfo is the subset of container state the streaming core needs
type ContainerInfo struct {
	ID      string
	Name    string
	Status  string
	Running bool
	TTY     bool
	Labels  map[string]string
}

// Project returns the compose project the container belongs to, or ""
func (c ContainerInfo) Project() string {
	return c.Labels[ComposeProjectLabel]
}

// LogsOptions selects the window of a container's log stream
type LogsOptions struct {
	Follow bool
	Tail   string
	Since  time.Time
}

// Runtime is the container-runtime surface consumed by the streaming core.
// The production implementation wraps the Docker Engine API client; tests
// substitute fakes.
type Runtime interface {
	// Inspect resolves a container by ID. A missing container is reported
	// as domain.ErrContainerNotFound.
	Inspect(ctx context.Context, id string) (ContainerInfo, error)

	// List returns all containers, including stopped ones
	List(ctx context.Context) ([]ContainerInfo, error)

	// ListByProject returns all containers labeled as belonging to the
	// given compose project, including stopped ones
	ListByProject(ctx context.Context, project string) ([]ContainerInfo, error)

	// Logs opens a container's log stream. The returned reader yields
	// plain text with stdout and stderr interleaved and no timestamps,
	// and unblocks when ctx is cancelled.
	Logs(ctx context.Context, id string, tty bool, opts LogsOptions) (io.ReadCloser, error)
}

// IsRunningStatus reports whether a container status string indicates a
// running container
func IsRunningStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "running") || strings.Contains(s, "up")
}

// IsStoppedStatus reports whether a container status string indicates a
// stopped container
func IsStoppedStatus(status string) bool {
	s := strings.ToLower(status)
	for _, state := range []string{"exited", "stopped", "created"} {
		if strings.Contains(s, state) {
			return true
		}
	}
	return false
}
