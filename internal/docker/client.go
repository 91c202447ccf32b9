package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/dialmaster/docktui/internal/domain"
)

// Client implements Runtime over the Docker Engine API
type Client struct {
	api *client.Client
}

// NewClient connects to the Docker daemon using the standard environment
// configuration (DOCKER_HOST etc.)
func NewClient() (*Client, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	return &Client{api: api}, nil
}

// Close releases the underlying API client
func (c *Client) Close() error {
	return c.api.Close()
}

// Inspect resolves a container by ID
func (c *Client) Inspect(ctx context.Context, id string) (ContainerInfo, error) {
	resp, err := c.api.ContainerInspect(ctx, id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return ContainerInfo{}, fmt.Errorf("%w: %s", domain.ErrContainerNotFound, id)
		}
		return ContainerInfo{}, fmt.Errorf("inspecting container %s: %w", id, err)
	}

	info := ContainerInfo{
		ID:   resp.ID,
		Name: strings.TrimPrefix(resp.Name, "/"),
	}
	if resp.State != nil {
		info.Status = resp.State.Status
		info.Running = resp.State.Running
	}
	if resp.Config != nil {
		info.TTY = resp.Config.Tty
		info.Labels = resp.Config.Labels
	}
	return info, nil
}

// List returns all containers, including stopped ones
func (c *Client) List(ctx context.Context) ([]ContainerInfo, error) {
	return c.list(ctx, filters.Args{})
}

// ListByProject returns all containers belonging to a compose project
func (c *Client) ListByProject(ctx context.Context, project string) ([]ContainerInfo, error) {
	return c.list(ctx, filters.NewArgs(
		filters.Arg("label", ComposeProjectLabel+"="+project),
	))
}

func (c *Client) list(ctx context.Context, args filters.Args) ([]ContainerInfo, error) {
	summaries, err := c.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: args,
	})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	infos := make([]ContainerInfo, 0, len(summaries))
	for _, s := range summaries {
		infos = append(infos, summaryToInfo(s))
	}
	return infos, nil
}

func summaryToInfo(s types.Container) ContainerInfo {
	name := s.ID
	if len(s.Names) > 0 {
		name = strings.TrimPrefix(s.Names[0], "/")
	}
	return ContainerInfo{
		ID:      s.ID,
		Name:    name,
		Status:  s.Status,
		Running: strings.EqualFold(s.State, "running"),
		Labels:  s.Labels,
	}
}

// Logs opens a container's log stream. Non-TTY containers produce a
// multiplexed stream on the wire; it is demultiplexed here so callers always
// read plain interleaved text.
func (c *Client) Logs(ctx context.Context, id string, tty bool, opts LogsOptions) (io.ReadCloser, error) {
	apiOpts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     opts.Follow,
		Tail:       opts.Tail,
		Timestamps: false,
	}
	if !opts.Since.IsZero() {
		apiOpts.Since = strconv.FormatInt(opts.Since.Unix(), 10)
	}

	rc, err := c.api.ContainerLogs(ctx, id, apiOpts)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContainerNotFound, id)
		}
		return nil, fmt.Errorf("opening log stream for %s: %w", id, err)
	}

	if tty {
		return rc, nil
	}
	return demuxStream(rc), nil
}
