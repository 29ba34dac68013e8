package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalContext_Cancel(t *testing.T) {
	ctx := NewSignalContext(context.Background())
	ctx.Cancel()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Nil(t, ctx.Signal())
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewSignalContext(parent)
	defer ctx.Cancel()

	cancel()
	<-ctx.Done()
	assert.Nil(t, ctx.Signal())
}

func TestPrintSystemMessage(t *testing.T) {
	var buf bytes.Buffer
	printSystemMessage(&buf, "%d ports", 3)
	assert.Equal(t, ">>> 3 ports\n", buf.String())
}
