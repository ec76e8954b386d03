package http1

import (
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/proto"
)

// Persist decides whether the connection may be reused after the exchange, given
// the protocol of the response and its Connection header value.
func Persist(protocol proto.Proto, connection string) http.Persistence {
	switch protocol {
	case proto.HTTP10:
		if headers.HasToken(connection, "keep-alive") {
			return http.KeepAlive
		}

		return http.Close
	case proto.HTTP11:
		// in case of HTTP/1.1, keep-alive may be only disabled
		if headers.HasToken(connection, "close") {
			return http.Close
		}

		return http.KeepAlive
	default:
		return http.Close
	}
}
