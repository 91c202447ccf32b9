package docker

import (
	"io"

	"github.com/docker/docker/pkg/stdcopy"
)

// demuxedStream exposes a demultiplexed view over a raw multiplexed log
// stream. Closing it closes the underlying stream, which also unblocks the
// copy goroutine.
type demuxedStream struct {
	io.Reader
	raw io.ReadCloser
	pr  *io.PipeReader
}

// demuxStream strips the stdcopy framing from a non-TTY log stream,
// interleaving stdout and stderr in arrival order.
func demuxStream(raw io.ReadCloser) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, raw)
		pw.CloseWithError(err)
	}()
	return &demuxedStream{Reader: pr, raw: raw, pr: pr}
}

func (d *demuxedStream) Close() error {
	err := d.raw.Close()
	d.pr.Close()
	return err
}
