package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

func TestCursor_Navigation(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("ab\ncd"))
	c := lexer.NewCursor(0, buf.Len(), 0, buf)

	assert.True(t, c.AtLineStart())
	assert.Equal(t, byte(0), c.ChPrev())
	assert.Equal(t, byte('a'), c.Ch())
	assert.Equal(t, byte('b'), c.ChNext())

	c.ForwardN(2)
	assert.Equal(t, byte('\n'), c.Ch())
	assert.True(t, c.AtLineEnd())

	c.Forward()
	assert.True(t, c.AtLineStart())
	assert.Equal(t, byte('c'), c.Ch())
	assert.Equal(t, byte('\n'), c.Relative(-1))
	assert.True(t, c.Match("cd"))
	assert.False(t, c.Match("cde"))
}

func TestCursor_BoundedReads(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("abcdef"))
	c := lexer.NewCursor(2, 2, 0, buf)

	assert.Equal(t, byte('b'), c.ChPrev())
	assert.Equal(t, byte('d'), c.Relative(1))
	assert.Equal(t, byte(0), c.Relative(2), "reads at the end offset are blank")
	assert.Equal(t, byte('a'), c.Relative(-2))
	assert.Equal(t, byte(0), c.Relative(-3))
	assert.False(t, c.AtLineStart())
}

func TestCursor_ForwardStopsAtEnd(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("ab"))
	c := lexer.NewCursor(0, 2, 0, buf)

	c.ForwardN(5)
	assert.Equal(t, 2, c.Pos())
	assert.False(t, c.More())
	assert.True(t, c.AtLineEnd())
}

func TestCursor_Spans(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("abcdef"))
	c := lexer.NewCursor(0, buf.Len(), 1, buf)

	c.ForwardN(2)
	c.SetState(2) // [0,1] = 1
	c.Forward()
	c.ChangeState(3) // open span [2,...) retagged
	c.ForwardSetState(4) // [2,3] = 3
	c.ForwardN(5)
	c.Complete() // [4,5] = 4

	assert.Equal(t, []lexer.Style{1, 1, 3, 3, 4, 4}, buf.Styles())
	assert.Equal(t, lexer.Style(4), c.State)
}
