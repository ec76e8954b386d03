package mime

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	XML            MIME = "text/xml"
	JSON           MIME = "application/json"
	CBOR           MIME = "application/cbor"
	YAML           MIME = "application/yaml"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
)

// Complies returns whether the header value carries the mime. Parameters (like charset)
// are ignored and the comparison is case-insensitive. Empty value is considered to
// comply with any mime
func Complies(mime MIME, with string) bool {
	with, _, _ = strings.Cut(with, ";")
	with = strings.TrimSpace(with)

	return len(with) == 0 || strcomp.EqualFold(with, mime)
}

// Parse maps the Content-Type value onto the known mimes, falling back to OctetStream
// for anything it doesn't recognize
func Parse(value string) MIME {
	for _, known := range []MIME{JSON, CBOR, HTML, Plain, XML, YAML, FormUrlencoded} {
		if len(value) > 0 && Complies(known, value) {
			return known
		}
	}

	return OctetStream
}
