// Package client sends requests over pooled connections, using the http1 framing
// engine for every exchange.
package client

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/indigo-web/embedhttp/client/internal/connection"
	"github.com/indigo-web/embedhttp/config"
	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

type Client struct {
	cfg    *config.Config
	logger Logger
	dialer net.Dialer
	tls    *tls.Config
	idle   *connection.Manager[*Session]
}

func New(cfg *config.Config) *Client {
	return &Client{
		cfg:    cfg,
		logger: log.Default(),
		idle:   connection.NewManager[*Session](cfg.NET.IdleConnsPerHost),
	}
}

// Logger sets the logger dropped connections are reported to.
func (c *Client) Logger(logger Logger) *Client {
	c.logger = logger
	return c
}

// TLS sets the config used for https connections. ServerName is filled from the URL
// if empty.
func (c *Client) TLS(cfg *tls.Config) *Client {
	c.tls = cfg
	return c
}

// Do sends the request to the URL and reads the response head. The request's path
// is taken from the URL unless set explicitly, as well as the Basic credentials.
// The Response must be closed after its body was consumed, so the connection can
// be reused.
//
// If a pooled connection turns out to be closed by the server, the request is
// retried once over a new connection, unless its body is a stream.
func (c *Client) Do(ctx context.Context, rawURL string, request *http.Request) (*Response, error) {
	ep, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, ep, request)
}

func (c *Client) do(ctx context.Context, ep endpoint, request *http.Request) (*Response, error) {
	req := *request
	if len(req.Path) == 0 {
		req.Path = ep.path
	}

	if req.Auth == nil && ep.auth != nil {
		req.Auth = ep.auth
	}

	for {
		var err error
		session, reused := c.idle.Acquire(ep.key)
		if !reused {
			if session, err = c.connect(ctx, ep); err != nil {
				return nil, err
			}
		}

		response, stop, err := session.roundtrip(ctx, &req)
		if err == nil {
			return c.newResponse(response, session, &req, stop), nil
		}

		_ = session.Close()

		if !reused || req.Stream != nil || !isStale(err) {
			return nil, err
		}

		c.logger.Printf("client: pooled connection to %s is stale, retrying: %s\n", ep.key, err)
	}
}

// Close closes all the idle connections.
func (c *Client) Close() error {
	return c.idle.Close()
}

func (c *Client) connect(ctx context.Context, ep endpoint) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.NET.DialTimeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", ep.addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", ep.addr, err)
	}

	if ep.secure {
		cfg := new(tls.Config)
		if c.tls != nil {
			cfg = c.tls.Clone()
		}

		if len(cfg.ServerName) == 0 {
			cfg.ServerName = ep.hostname
		}

		tlsConn := tls.Client(conn, cfg)
		if err = tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("tls handshake with %s: %w", ep.addr, err)
		}

		conn = tlsConn
	}

	return newSession(conn, ep, c.cfg), nil
}

func (c *Client) newResponse(
	response *http.Response, session *Session, request *http.Request, stop func() bool,
) *Response {
	reusable := response.Persistence == http.KeepAlive
	if request.Headers != nil && headers.HasToken(request.Headers.Value(headers.Connection), "close") {
		reusable = false
	}

	return &Response{
		Response: response,
		session:  session,
		client:   c,
		stop:     stop,
		reusable: reusable,
	}
}

func (c *Client) release(session *Session) error {
	return c.idle.Release(session.key, session)
}

type endpoint struct {
	key, addr, hostname, host, path string
	// base is the escaped path without a trailing slash
	base   string
	secure bool
	auth   *http.BasicAuth
}

func parseURL(rawURL string) (t endpoint, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return t, fmt.Errorf("parse url: %w", err)
	}

	var defaultPort string
	switch u.Scheme {
	case "http":
		defaultPort = "80"
	case "https":
		defaultPort = "443"
		t.secure = true
	default:
		return t, fmt.Errorf("%w: %q", errors.ErrUnsupportedScheme, u.Scheme)
	}

	t.hostname = u.Hostname()
	if len(t.hostname) == 0 {
		return t, fmt.Errorf("parse url: %q has no host", rawURL)
	}

	port := u.Port()
	if len(port) == 0 {
		port = defaultPort
	}

	t.addr = net.JoinHostPort(t.hostname, port)
	t.key = u.Scheme + "://" + t.addr
	t.host = u.Host
	t.path = u.RequestURI()
	t.base = strings.TrimSuffix(u.EscapedPath(), "/")

	if u.User != nil {
		password, _ := u.User.Password()
		t.auth = &http.BasicAuth{User: u.User.Username(), Password: password}
	}

	return t, nil
}

// isStale reports whether the error means the server has closed the idle connection
// before the request was processed.
func isStale(err error) bool {
	return stderrors.Is(err, errors.ErrConnectionClosed) ||
		stderrors.Is(err, net.ErrClosed) ||
		stderrors.Is(err, syscall.EPIPE) ||
		stderrors.Is(err, syscall.ECONNRESET)
}
