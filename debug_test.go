package wrc

import (
	"testing"

	"github.com/alecthomas/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	DebugPrint("Section %v", ".rsrc")
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "Section .rsrc", logs.All()[0].Message)

	// nil goes back to the no-op logger.
	SetLogger(nil)
	assert.NotNil(t, Logger())
	DebugPrint("Section %v", ".text")
	assert.Equal(t, 1, logs.Len())
}
