package client

import (
	"context"
	"net"
	"time"

	"github.com/indigo-web/embedhttp/config"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http1"
	"github.com/indigo-web/embedhttp/transport"
	"github.com/indigo-web/utils/buffer"
)

// Session is a single connection together with its framing engine. Exchanges over
// a session are strictly sequential.
type Session struct {
	conn       net.Conn
	key        string
	client     *transport.Client
	serializer *http1.Serializer
	responses  *http1.ResponseReader
	cfg        *config.Config
}

func newSession(conn net.Conn, ep endpoint, cfg *config.Config) *Session {
	client := transport.NewClient(conn, make([]byte, cfg.Head.BufferSize.Default))
	serializer := http1.NewSerializer(
		buffer.NewBuffer[byte](0, cfg.Head.BufferSize.Maximal),
		make([]byte, cfg.Body.ChunkedBufferSize),
		cfg.Body.StreamBufferSize,
	).Defaults(
		headers.Header{Key: headers.Host, Value: ep.host},
		headers.Header{Key: headers.UserAgent, Value: cfg.Headers.UserAgent},
	)

	return &Session{
		conn:       conn,
		key:        ep.key,
		client:     client,
		serializer: serializer,
		responses:  http1.NewResponseReader(client, cfg),
		cfg:        cfg,
	}
}

// roundtrip sends the request and reads the response head. Cancelling the context
// interrupts blocking network operations, including subsequent body reads, until
// the returned stop function is called.
func (s *Session) roundtrip(
	ctx context.Context, request *http.Request,
) (response *http.Response, stop func() bool, err error) {
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}

	stop = context.AfterFunc(ctx, func() {
		_ = s.conn.SetDeadline(time.Now())
	})

	response, err = s.exchange(ctx, request)
	if err != nil {
		stop()
		return nil, nil, s.ctxErr(ctx, err)
	}

	return response, stop, nil
}

func (s *Session) exchange(ctx context.Context, request *http.Request) (*http.Response, error) {
	if err := s.conn.SetWriteDeadline(s.deadline(ctx, s.cfg.NET.WriteTimeout)); err != nil {
		return nil, err
	}

	if err := s.serializer.Write(request, s.client); err != nil {
		return nil, err
	}

	if err := s.conn.SetReadDeadline(s.deadline(ctx, s.cfg.NET.ReadTimeout)); err != nil {
		return nil, err
	}

	return s.responses.Read(request.Method)
}

func (s *Session) deadline(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}

	return deadline
}

// ctxErr prefers the context's error, as it's the reason of deadline errors
// caused by cancellation.
func (s *Session) ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return err
}

func (s *Session) Close() error {
	return s.conn.Close()
}
