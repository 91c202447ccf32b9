package stream

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/dialmaster/docktui/internal/constants"
	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/domain"
)

// Streamer owns the background workers that pull log streams from the
// runtime and feed the session-tagged queue. At most one streaming session
// is active per Streamer; starting a new session supersedes the previous
// one, whose in-flight messages the consumer drops by session ID.
type Streamer struct {
	runtime docker.Runtime
	queue   *Queue

	mu        sync.Mutex
	sessionID int
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewStreamer creates a streamer over the given runtime
func NewStreamer(runtime docker.Runtime) *Streamer {
	return &Streamer{
		runtime: runtime,
		queue:   NewQueue(),
	}
}

// Queue returns the queue workers feed and the consumer drains
func (s *Streamer) Queue() *Queue {
	return s.queue
}

// Start launches a worker streaming logs for the given item and returns the
// new session ID. Any previous worker keeps its own context: it is the
// caller's job to stop it, and a brief overlap is harmless because the
// consumer filters by session ID.
func (s *Streamer) Start(ref domain.ItemRef, tail, since string) int {
	s.mu.Lock()
	s.sessionID++
	id := s.sessionID

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.run(ctx, id, ref, tail, since)
	}()

	return id
}

// Stop cancels the current worker. With wait set it blocks until the worker
// exits, bounded by StopStreamTimeout so UI teardown cannot hang; without it
// the stop is fire-and-forget, the path used during rapid re-selection.
// Queued messages are discarded either way.
func (s *Streamer) Stop(wait bool) {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if wait && done != nil {
		select {
		case <-done:
		case <-time.After(constants.StopStreamTimeout):
			log.Printf("timed out waiting for log worker to stop")
		}
	}

	s.queue.Clear()
}

// run dispatches on the item kind. Worker-level failures never cross the
// goroutine boundary as panics or returned errors: they become error
// messages on the queue.
func (s *Streamer) run(ctx context.Context, id int, ref domain.ItemRef, tail, since string) {
	switch ref.Kind {
	case domain.ItemContainer:
		s.streamContainer(ctx, id, ref.ID, tail, since)
	case domain.ItemStack:
		s.streamStack(ctx, id, ref.ID, tail, since)
	default:
		s.queue.Push(domain.Message{
			SessionID: id,
			Kind:      domain.KindError,
			Payload:   fmt.Sprintf("Unknown item type: %s", ref.Kind),
		})
	}
}

// streamContainer streams logs for a single container. A cheap tail-1 probe
// detects the "no logs in range" case before committing to a follow stream;
// the full stream only follows when the container is running, since a
// stopped container's logs are finite and following would hang.
func (s *Streamer) streamContainer(ctx context.Context, id int, containerID, tail, since string) {
	info, err := s.runtime.Inspect(ctx, containerID)
	if err != nil {
		s.pushStreamError(ctx, id, containerID, err)
		return
	}

	sinceTime := ParseSince(since, time.Now())

	if s.probeEmpty(ctx, info, sinceTime) {
		s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})
		if !info.Running {
			return
		}
		// Keep streaming for running containers in case new logs appear.
	}

	rc, err := s.runtime.Logs(ctx, info.ID, info.TTY, docker.LogsOptions{
		Follow: info.Running,
		Tail:   tail,
		Since:  sinceTime,
	})
	if err != nil {
		s.pushStreamError(ctx, id, containerID, err)
		return
	}
	defer rc.Close()

	s.forward(ctx, rc, "", func(segment string) {
		s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: segment})
	})
}

// probeEmpty performs the non-following tail-1 request. Probe failures are
// not fatal; the full stream will surface any real error.
func (s *Streamer) probeEmpty(ctx context.Context, info docker.ContainerInfo, since time.Time) bool {
	rc, err := s.runtime.Logs(ctx, info.ID, info.TTY, docker.LogsOptions{
		Follow: false,
		Tail:   "1",
		Since:  since,
	})
	if err != nil {
		return false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false
	}
	return len(bytes.TrimSpace(data)) == 0
}

// forward reads raw log lines from rc, cleans them, and hands each segment
// (with the optional container prefix applied) to emit. It stops when the
// stream ends or ctx is cancelled; the runtime unblocks the read on
// cancellation.
func (s *Streamer) forward(ctx context.Context, rc io.Reader, prefix string, emit func(string)) {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, constants.ScannerBufferSize), constants.ScannerMaxBufferSize)
	scanner.Split(ScanLinesKeepCR)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		for _, segment := range CleanSegments(scanner.Text()) {
			emit(prefix + segment)
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		log.Printf("log stream read error: %v", err)
	}
}

// pushStreamError converts a stream failure into a single error message,
// unless the failure is just our own cancellation.
func (s *Streamer) pushStreamError(ctx context.Context, id int, containerID string, err error) {
	if ctx.Err() != nil {
		return
	}

	msg := fmt.Sprintf("Error streaming logs: %v", err)
	if errors.Is(err, domain.ErrContainerNotFound) {
		msg = fmt.Sprintf("Container %s not found", containerID)
	}

	s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindError, Payload: msg})
}
