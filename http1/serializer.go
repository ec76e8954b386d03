package http1

import (
	"encoding/base64"
	"io"
	"log"
	"strconv"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/proto"
	"github.com/indigo-web/embedhttp/internal/httpchars"
	"github.com/indigo-web/embedhttp/transport"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	contentType      = "Content-Type: "
	contentLength    = "Content-Length: "
	transferEncoding = "Transfer-Encoding: chunked"
	basicAuth        = "Authorization: Basic "
)

var noHeaders = headers.New()

// minimalStreamBuffSize defines the minimal size of the buffer streamed bodies of
// known length are copied through.
const minimalStreamBuffSize = 16

// Serializer renders requests. The head is rendered into a bounded buffer and sent
// by a single write, the body goes through either FixedWriter or ChunkedWriter.
type Serializer struct {
	head       *buffer.Buffer[byte]
	chunked    *ChunkedWriter
	fixed      FixedWriter
	streamBuff []byte
	scratch    []byte
	defaults   []headers.Header
}

func NewSerializer(head *buffer.Buffer[byte], chunkedBuff []byte, streamBuffSize int) *Serializer {
	if streamBuffSize < minimalStreamBuffSize {
		log.Printf("misconfiguration: stream buffer size (Config.Body.StreamBufferSize) is set to %d, "+
			"however minimal possible value is %d. Setting it hard to %d\n",
			streamBuffSize, minimalStreamBuffSize, minimalStreamBuffSize,
		)

		streamBuffSize = minimalStreamBuffSize
	}

	return &Serializer{
		head:       head,
		chunked:    NewChunkedWriter(nil, chunkedBuff),
		streamBuff: make([]byte, streamBuffSize),
	}
}

// Defaults sets headers rendered for every request, unless it carries its own ones.
func (s *Serializer) Defaults(hdrs ...headers.Header) *Serializer {
	s.defaults = hdrs
	return s
}

// Begin renders and sends the request head, returning the writer the body must be
// written with. The body writer is owned by the Serializer and is valid until the
// next call. For requests without a body, the returned writer accepts nothing.
func (s *Serializer) Begin(request *http.Request, w io.Writer) (BodyWriter, error) {
	length := request.BodyLength()
	if err := s.renderHead(request, length); err != nil {
		return nil, err
	}

	if _, err := transport.WriteAll(w, s.head.Finish()); err != nil {
		return nil, err
	}

	if length < 0 {
		s.chunked.Reset(w)
		return s.chunked, nil
	}

	s.fixed.Reset(w, length)
	return &s.fixed, nil
}

// Write sends the whole request, including the body from either Request.Body or
// Request.Stream.
func (s *Serializer) Write(request *http.Request, w io.Writer) error {
	body, err := s.Begin(request, w)
	if err != nil {
		return err
	}

	switch {
	case len(request.Body) > 0:
		_, err = body.Write(request.Body)
	case request.Stream != nil && body == s.chunked:
		_, err = s.chunked.ReadFrom(request.Stream)
	case request.Stream != nil:
		_, err = io.CopyBuffer(body, request.Stream, s.streamBuff)
	}

	if err != nil {
		return err
	}

	if body == s.chunked {
		return s.chunked.FinishWithTrailers(request.Trailers)
	}

	return body.Finish()
}

func (s *Serializer) renderHead(request *http.Request, length int64) error {
	s.head.Clear()

	path := request.Path
	if len(path) == 0 {
		path = "/"
	}

	hdrs := request.Headers
	if hdrs == nil {
		hdrs = noHeaders
	}

	if err := s.validate(request, path, hdrs); err != nil {
		return err
	}

	ok := s.str(request.Method.String()) &&
		s.head.Append(' ') &&
		s.str(path) &&
		s.head.Append(' ') &&
		s.str(proto.HTTP11.String()) &&
		s.head.Append(httpchars.CRLF...)

	for _, header := range s.defaults {
		if !hdrs.Has(header.Key) {
			ok = ok && s.header(header.Key, header.Value)
		}
	}

	for _, header := range hdrs.Expose() {
		if isFramingHeader(header.Key) {
			continue
		}

		ok = ok && s.header(header.Key, header.Value)
	}

	if request.Auth != nil {
		ok = ok && s.str(basicAuth) && s.head.Append(s.encodeCredentials(request.Auth)...) &&
			s.head.Append(httpchars.CRLF...)
	}

	if len(request.ContentType) > 0 && !hdrs.Has(headers.ContentType) {
		ok = ok && s.str(contentType) && s.str(request.ContentType) && s.head.Append(httpchars.CRLF...)
	}

	switch {
	case length < 0:
		ok = ok && s.str(transferEncoding) && s.head.Append(httpchars.CRLF...)
	case length > 0 || request.Method.HasBody():
		ok = ok && s.str(contentLength) &&
			s.head.Append(strconv.AppendInt(s.scratch[:0], length, 10)...) &&
			s.head.Append(httpchars.CRLF...)
	}

	if !(ok && s.head.Append(httpchars.CRLF...)) {
		s.head.Clear()
		return errors.ErrRequestHeadTooLarge
	}

	return nil
}

func (s *Serializer) validate(request *http.Request, path string, hdrs *headers.Headers) error {
	if !validTarget(path) {
		return errors.ErrInvalidPath
	}

	for _, header := range s.defaults {
		if !validField(header.Key, header.Value) {
			return errors.ErrInvalidHeader
		}
	}

	for _, header := range hdrs.Expose() {
		if !validField(header.Key, header.Value) {
			return errors.ErrInvalidHeader
		}
	}

	if !isFieldContent(uf.S2B(request.ContentType)) {
		return errors.ErrInvalidHeader
	}

	return nil
}

func (s *Serializer) header(key, value string) bool {
	return s.str(key) && s.head.Append(httpchars.COLONSP...) && s.str(value) &&
		s.head.Append(httpchars.CRLF...)
}

func (s *Serializer) str(str string) bool {
	return s.head.Append(uf.S2B(str)...)
}

func (s *Serializer) encodeCredentials(auth *http.BasicAuth) []byte {
	s.scratch = append(append(append(s.scratch[:0], auth.User...), ':'), auth.Password...)
	credentials := len(s.scratch)
	s.scratch = base64.StdEncoding.AppendEncode(s.scratch, s.scratch[:credentials])

	return s.scratch[credentials:]
}

func isFramingHeader(key string) bool {
	return strcomp.EqualFold(key, headers.ContentLength) ||
		strcomp.EqualFold(key, headers.TransferEncoding)
}
