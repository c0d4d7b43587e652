package logsink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkReceivesMessageAndLocation(t *testing.T) {
	var msgs []string
	var locs []Location
	SetFunc(func(msg string, loc Location) {
		msgs = append(msgs, msg)
		locs = append(locs, loc)
	})
	defer SetFunc(nil)

	Logger().Info("created context", "version", "4.1")

	require.Len(t, msgs, 1)
	assert.Equal(t, "created context version=4.1", msgs[0])
	assert.True(t, strings.HasSuffix(locs[0].File, "logsink_test.go"), locs[0].File)
	assert.NotZero(t, locs[0].Line)
}

func TestSinkAttrsAndGroups(t *testing.T) {
	var got string
	SetFunc(func(msg string, loc Location) { got = msg })
	defer SetFunc(nil)

	Logger().With("window", 3).WithGroup("gl").Warn("swap interval", "err", "unsupported")
	assert.Equal(t, "swap interval window=3 gl.err=unsupported", got)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "<unknown>", Location{}.String())
	assert.Equal(t, "a.go:12", Location{File: "a.go", Line: 12}.String())
}
