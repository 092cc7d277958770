package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	assert.NotEmpty(t, GetVersion())

	version = "v1.4.2"
	assert.Equal(t, "1.4.2", GetVersion())

	version = "1.4.2"
	assert.Equal(t, "1.4.2", GetVersion())
}

func TestGetCommit(t *testing.T) {
	orig := commit
	t.Cleanup(func() { commit = orig })

	assert.Equal(t, "unknown", GetCommit())

	commit = "abc1234"
	assert.Equal(t, "abc1234", GetCommit())
}
