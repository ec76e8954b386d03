package http1

import (
	"io"
	"strconv"
	"testing"

	"github.com/indigo-web/embedhttp/config"
	"github.com/indigo-web/embedhttp/http/method"
	"github.com/indigo-web/embedhttp/internal/responsegen"
	"github.com/indigo-web/embedhttp/transport"
	"github.com/indigo-web/embedhttp/transport/dummy"
)

func BenchmarkParseResponse(b *testing.B) {
	response := newResponse()

	for _, n := range []int{5, 10, 50} {
		data := responsegen.Generate("", responsegen.Headers(n))

		b.Run(strconv.Itoa(n)+" headers", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = ParseResponse(data, method.GET, response, 64)
			}
		})
	}
}

func BenchmarkChunkedDecoder(b *testing.B) {
	decoder := NewChunkedDecoder(1 << 20)

	for _, chunkSize := range []int{16, 512, 4096} {
		data := responsegen.Chunked(string(make([]byte, 64*1024)), chunkSize)

		b.Run(strconv.Itoa(chunkSize)+" bytes chunks", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				decoder.Reset()
				rest := data
				for {
					var err error
					_, rest, err = decoder.Parse(rest)
					if err != nil {
						break
					}
				}
			}
		})
	}
}

func BenchmarkResponseReader(b *testing.B) {
	data := responsegen.Generate("Hello, world!", responsegen.Headers(10))
	client := transport.NewClient(dummy.NewCircularConn(data), make([]byte, 4096))
	responses := NewResponseReader(client, config.Default())
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		response, err := responses.Read(method.GET)
		if err != nil {
			b.Fatal(err)
		}

		if err = response.Body.Discard(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChunkedWriter(b *testing.B) {
	payload := make([]byte, 100)
	writer := NewChunkedWriter(io.Discard, make([]byte, ChunkedBufferSize(1024)))
	b.SetBytes(int64(len(payload)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = writer.Write(payload)
	}
}
