package headers

import (
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// KeepAlive represents the parameters of the Keep-Alive header. Zero values mean
// the parameter was omitted or unparseable.
type KeepAlive struct {
	Timeout, Max int
}

func ParseKeepAlive(value string) (ka KeepAlive) {
	for token := range Tokens(value) {
		key, val, found := strings.Cut(token, "=")
		if !found {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || n < 0 {
			continue
		}

		switch key = strings.TrimSpace(key); {
		case strcomp.EqualFold(key, "timeout"):
			ka.Timeout = n
		case strcomp.EqualFold(key, "max"):
			ka.Max = n
		}
	}

	return ka
}
