package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethod(t *testing.T) {
	for _, method := range List {
		assert.Equal(t, method.String(), Parse(method.String()).String())
	}

	assert.Equal(t, Unknown, Parse("get"))
	assert.Equal(t, Unknown, Parse(""))
	assert.Equal(t, "UNKNOWN", Method(200).String())
}

func TestHasBody(t *testing.T) {
	assert.True(t, POST.HasBody())
	assert.True(t, PUT.HasBody())
	assert.False(t, GET.HasBody())
	assert.False(t, HEAD.HasBody())
}
