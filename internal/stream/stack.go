package stream

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dialmaster/docktui/internal/constants"
	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/domain"
)

// streamStack streams logs for every container in a compose stack. One
// reader goroutine per container prefixes its lines with "[<name>] " and
// feeds a shared channel; a fan-in loop forwards them to the session queue.
// Cross-container ordering is best-effort arrival order.
func (s *Streamer) streamStack(ctx context.Context, id int, stackName, tail, since string) {
	containers, err := s.runtime.ListByProject(ctx, stackName)
	if err != nil {
		if ctx.Err() == nil {
			s.queue.Push(domain.Message{
				SessionID: id,
				Kind:      domain.KindError,
				Payload:   fmt.Sprintf("Error streaming logs: %v", err),
			})
		}
		return
	}

	containers = dedupeContainers(containers)
	if len(containers) == 0 {
		s.queue.Push(domain.Message{
			SessionID: id,
			Kind:      domain.KindError,
			Payload:   fmt.Sprintf("No containers found for stack %s", stackName),
		})
		return
	}

	sinceTime := ParseSince(since, time.Now())

	merged := make(chan string, constants.FanInBufferSize)
	var wg sync.WaitGroup
	opened := 0

	for _, c := range containers {
		rc, err := s.runtime.Logs(ctx, c.ID, c.TTY, docker.LogsOptions{
			Follow: true,
			Tail:   tail,
			Since:  sinceTime,
		})
		if err != nil {
			log.Printf("failed to open logs for container %s: %v", c.Name, err)
			continue
		}

		opened++
		wg.Add(1)
		go func(name string, rc io.ReadCloser) {
			defer wg.Done()
			defer rc.Close()
			s.forward(ctx, rc, "["+name+"] ", func(line string) {
				select {
				case merged <- line:
				case <-ctx.Done():
				}
			})
		}(c.Name, rc)
	}

	if opened == 0 {
		s.queue.Push(domain.Message{
			SessionID: id,
			Kind:      domain.KindError,
			Payload:   fmt.Sprintf("Could not stream logs for any containers in stack %s", stackName),
		})
		return
	}

	// Fast "nothing found" signal: if no line has been forwarded by the
	// time the timer fires, report no_logs without waiting for every
	// stream to prove it is empty. The same report runs at most once when
	// all readers finish early with nothing to show.
	var forwarded atomic.Bool
	var noLogsReported atomic.Bool
	reportNoLogs := func() {
		if !forwarded.Load() && noLogsReported.CompareAndSwap(false, true) {
			s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})
		}
	}
	noLogsTimer := time.AfterFunc(constants.NoLogsCheckDelay, reportNoLogs)
	defer noLogsTimer.Stop()

	readersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(readersDone)
	}()

	for {
		select {
		case line := <-merged:
			forwarded.Store(true)
			s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: line})
		case <-ctx.Done():
			return
		case <-readersDone:
			// All readers finished naturally; drain what is buffered.
			for {
				select {
				case line := <-merged:
					forwarded.Store(true)
					s.queue.Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: line})
				default:
					reportNoLogs()
					return
				}
			}
		}
	}
}

// dedupeContainers drops duplicate container IDs. The runtime should not
// return duplicates, but overlapping listing criteria could.
func dedupeContainers(containers []docker.ContainerInfo) []docker.ContainerInfo {
	seen := make(map[string]struct{}, len(containers))
	unique := containers[:0]
	for _, c := range containers {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
