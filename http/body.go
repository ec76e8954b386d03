package http

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http/mime"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

type Retriever interface {
	// Retrieve returns the next piece of the body. The piece is valid until the next
	// call. When the body is over, io.EOF is returned.
	Retrieve() ([]byte, error)
}

// BodyReader is implemented by every framing-specific body reader.
type BodyReader interface {
	Retriever
	io.Reader
	// Done reports whether the body has been consumed entirely.
	Done() bool
}

// Body is a handle over the response body. Mixing Retrieve and Read calls isn't
// supported, as Read may stash a part of the retrieved piece.
type Body struct {
	reader      BodyReader
	contentType mime.MIME
	buff        []byte
	complete    bool
}

func NewBody(prealloc int) *Body {
	return &Body{
		buff: make([]byte, 0, prealloc),
	}
}

func (b *Body) Reset(reader BodyReader, contentType mime.MIME) {
	b.reader = reader
	b.contentType = contentType
	b.buff = b.buff[:0]
	b.complete = false
}

// Retrieve returns the next piece of the body.
func (b *Body) Retrieve() ([]byte, error) {
	return b.reader.Retrieve()
}

// Read implements the io.Reader interface.
func (b *Body) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

// Done reports whether the body has been consumed entirely.
func (b *Body) Done() bool {
	return b.reader.Done()
}

// Bytes returns the whole body at once. The result is valid until the body is reset.
// If errors.ErrIncomplete is returned, the call can be repeated later with no data loss.
func (b *Body) Bytes() ([]byte, error) {
	if b.complete {
		return b.buff, nil
	}

	for {
		data, err := b.reader.Retrieve()
		b.buff = append(b.buff, data...)
		switch err {
		case nil:
		case io.EOF:
			b.complete = true
			return b.buff, nil
		default:
			return nil, err
		}
	}
}

// String returns the whole body at once in a string representation.
func (b *Body) String() (string, error) {
	data, err := b.Bytes()
	return uf.B2S(data), err
}

// ReadInto reads the whole body into the buffer, returning how many bytes were
// written. errors.ErrBufferTooSmall is returned if the body doesn't fit.
func (b *Body) ReadInto(buff []byte) (n int, err error) {
	for {
		var data []byte
		data, err = b.reader.Retrieve()
		if len(data) > len(buff)-n {
			return n, errors.ErrBufferTooSmall
		}

		n += copy(buff[n:], data)
		switch err {
		case nil:
		case io.EOF:
			return n, nil
		default:
			return n, err
		}
	}
}

// JSON decodes the whole body into the model. If the response's Content-Type is
// defined and is incompatible with mime.JSON, errors.ErrUnsupportedMediaType is returned.
func (b *Body) JSON(model any) error {
	if !mime.Complies(mime.JSON, b.contentType) {
		return errors.ErrUnsupportedMediaType
	}

	data, err := b.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// Discard reads the rest of the body, throwing it away.
func (b *Body) Discard() error {
	for {
		_, err := b.reader.Retrieve()
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}
