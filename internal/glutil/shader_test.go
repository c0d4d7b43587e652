package glutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminate(t *testing.T) {
	assert.Equal(t, "model\x00", terminate("model"))
	assert.Equal(t, "model\x00", terminate("model\x00"))
	assert.Equal(t, "\x00", terminate(""))
}
