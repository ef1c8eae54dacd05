package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const module = `module m
fn f() -> uint256 {
entry:
  %0 = add 2, 3
  %1 = mul %0, 1
  ret %0
}
`

func TestStartOptimizesEachChunk(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader(module+"\n"+module+"\n"), &out, 2)

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "%0 = mov 5"))
	assert.NotContains(t, text, "mul")
	assert.Contains(t, text, "; 2 -> 1 instructions")
	assert.True(t, strings.HasPrefix(text, PROMPT))
}

func TestStartRunsTrailingChunkAtEOF(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader(strings.TrimSuffix(module, "\n")), &out, 1)

	text := out.String()
	assert.Contains(t, text, "%0 = mov 5")
	assert.Contains(t, text, "%1 = mov %0")
}

func TestStartReportsErrors(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("module m\nfn f() {\n}\n\nmodule m\nfn g() {\nentry:\n  ret %3\n}\n\n"), &out, 2)

	text := out.String()
	assert.Contains(t, text, "function f has no blocks")
	assert.Contains(t, text, "never defined")
}
