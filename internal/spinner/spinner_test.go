package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartDrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := Start(&out, "evaluating")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "evaluating")
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop() // idempotent

	s := out.String()
	assert.True(t, strings.HasSuffix(s, "\r"+strings.Repeat(" ", len("evaluating")+2)+"\r"))
}

func TestStartOnTerminalSkipsNonTerminals(t *testing.T) {
	var out bytes.Buffer
	stop := StartOnTerminal(&out, "evaluating")
	time.Sleep(3 * interval)
	stop()

	assert.Empty(t, out.String())
}
