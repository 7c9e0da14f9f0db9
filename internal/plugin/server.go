// Package plugin serves frombase commands to a host shell over a framed
// stdio protocol.
//
// A session starts with the plugin announcing its encoding (one length byte
// and the codec name). The host then sends Request frames and receives
// Response frames carrying the same ID. Run requests execute concurrently on
// a bounded worker pool, so their responses may come back out of order.
package plugin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/horasal/frombase"
)

type Server struct {
	codec    Codec
	commands map[string]frombase.Command
	pool     *ants.Pool
	log      zerolog.Logger

	mu       sync.Mutex // serializes frame writes
	w        io.Writer
	writeErr error
}

// NewServer returns a Server that runs commands on up to workers goroutines.
func NewServer(codec Codec, workers int, logger zerolog.Logger, commands ...frombase.Command) (*Server, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}
	pool, err := ants.NewPool(workers, ants.WithExpiryDuration(time.Minute))
	if err != nil {
		return nil, errors.Wrap(err, "creating worker pool")
	}

	s := &Server{
		codec:    codec,
		commands: make(map[string]frombase.Command, len(commands)),
		pool:     pool,
		log:      logger.With().Str("component", "plugin").Str("encoding", codec.Name()).Logger(),
	}
	for _, c := range commands {
		s.commands[c.Signature().Name] = c
	}
	return s, nil
}

// Close releases the worker pool.
func (s *Server) Close() {
	s.pool.Release()
}

// Serve runs one session, reading requests from r and writing responses to w,
// until the host says goodbye, r is exhausted or ctx is done. It waits for
// in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.w = w
	if err := writeEncodingHeader(w, s.codec); err != nil {
		return errors.Wrap(err, "writing encoding header")
	}
	s.log.Info().Int("commands", len(s.commands)).Msg("plugin session started")

	var (
		wg      sync.WaitGroup
		br      = bufio.NewReader(r)
		readErr error
		handled int
	)

loop:
	for {
		if err := ctx.Err(); err != nil {
			readErr = err
			break
		}

		var req Request
		if err := s.codec.ReadFrame(br, &req); err != nil {
			if err != io.EOF {
				readErr = errors.Wrap(err, "reading request")
			}
			break
		}
		handled++
		s.log.Debug().Uint64("id", req.ID).Str("method", req.Method).Str("name", req.Name).Msg("request")

		switch req.Method {
		case MethodSignature:
			s.respond(Response{ID: req.ID, Signatures: s.signatures()})

		case MethodRun:
			wg.Add(1)
			req := req
			if err := s.pool.Submit(func() {
				defer wg.Done()
				s.respond(s.run(&req))
			}); err != nil {
				wg.Done()
				s.respond(Response{ID: req.ID, Error: toError(errors.Wrap(err, "scheduling request"))})
			}

		case MethodGoodbye:
			break loop

		default:
			s.respond(Response{ID: req.ID, Error: &Error{
				Label: "Unknown method",
				Msg:   fmt.Sprintf("method %q is not supported", req.Method),
			}})
		}
	}

	wg.Wait()
	s.log.Info().Int("requests", handled).Msg("plugin session ended")

	if readErr != nil {
		return readErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}

func (s *Server) run(req *Request) Response {
	call := req.call()
	cmd, ok := s.commands[req.Name]
	if !ok {
		return Response{ID: req.ID, Error: toError(&frombase.LabeledError{
			Kind:  frombase.ErrUnknownCommand,
			Label: "Plugin call with wrong name signature",
			Msg:   fmt.Sprintf("Unknown plugin command %q", req.Name),
			Span:  &call.Head,
		})}
	}

	start := time.Now()
	out, err := cmd.Run(call, req.Input.input())
	if err != nil {
		s.log.Warn().Err(err).Uint64("id", req.ID).Msg("command failed")
		return Response{ID: req.ID, Error: toError(err)}
	}
	s.log.Debug().Uint64("id", req.ID).Int("bytes", len(out)).Dur("took", time.Since(start)).Msg("command done")
	return Response{ID: req.ID, Value: &Value{Type: TypeBinary, Binary: out, Span: call.Head}}
}

func (s *Server) signatures() []frombase.Signature {
	sigs := make([]frombase.Signature, 0, len(s.commands))
	for _, c := range s.commands {
		sigs = append(sigs, c.Signature())
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Name < sigs[j].Name })
	return sigs
}

func (s *Server) respond(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return
	}
	if err := s.codec.WriteFrame(s.w, resp); err != nil {
		s.writeErr = errors.Wrapf(err, "writing response %d", resp.ID)
		s.log.Error().Err(err).Uint64("id", resp.ID).Msg("write failed")
	}
}
