package lexer

// Cursor walks a range of an Accessor one byte at a time while tracking the
// current state and closing a style span whenever the state changes.
//
// Relative reads are bounded to [0, end): anything outside yields 0, so
// lookahead can never observe bytes the caller did not hand to the scanner.
type Cursor struct {
	acc Accessor
	end int
	pos int

	// State is the classification of the span currently open.
	State Style

	atLineStart bool
	atLineEnd   bool

	chPrev byte
	ch     byte
	chNext byte
}

// NewCursor positions a cursor at start over [start, start+length) with the
// given initial state and opens the first style segment there.
func NewCursor(start, length int, initState Style, acc Accessor) *Cursor {
	c := &Cursor{
		acc:   acc,
		end:   start + length,
		pos:   start,
		State: initState,
	}

	acc.StartAt(start)
	acc.StartSegment(start)

	c.atLineStart = acc.LineStart(acc.LineOf(start)) == start
	c.chPrev = c.charAt(start - 1)
	c.ch = c.charAt(start)
	c.chNext = c.charAt(start + 1)
	c.atLineEnd = c.lineEndsHere()

	return c
}

func (c *Cursor) charAt(pos int) byte {
	if pos < 0 || pos >= c.end {
		return 0
	}
	return c.acc.CharAt(pos)
}

func (c *Cursor) lineEndsHere() bool {
	return c.ch == '\n' || (c.ch == '\r' && c.chNext != '\n') || c.pos >= c.end
}

// Pos returns the absolute position of the cursor.
func (c *Cursor) Pos() int { return c.pos }

// End returns the exclusive end of the scanned range.
func (c *Cursor) End() int { return c.end }

// Ch returns the byte under the cursor.
func (c *Cursor) Ch() byte { return c.ch }

// ChPrev returns the byte before the cursor.
func (c *Cursor) ChPrev() byte { return c.chPrev }

// ChNext returns the byte after the cursor.
func (c *Cursor) ChNext() byte { return c.chNext }

// AtLineStart reports whether the cursor is on the first byte of a line.
func (c *Cursor) AtLineStart() bool { return c.atLineStart }

// AtLineEnd reports whether the cursor is on a line terminator or at the end.
func (c *Cursor) AtLineEnd() bool { return c.atLineEnd }

// More reports whether bytes remain in the range.
func (c *Cursor) More() bool { return c.pos < c.end }

// Relative returns the byte n positions away from the cursor (n may be negative).
func (c *Cursor) Relative(n int) byte {
	return c.charAt(c.pos + n)
}

// Match reports whether the bytes starting at the cursor equal s.
func (c *Cursor) Match(s string) bool {
	for i := range len(s) {
		if c.Relative(i) != s[i] {
			return false
		}
	}
	return true
}

// Forward advances one byte. At the end of the range the cursor stays put
// and reads as blank.
func (c *Cursor) Forward() {
	if c.pos >= c.end {
		c.atLineStart = false
		c.chPrev = ' '
		c.ch = ' '
		c.chNext = ' '
		c.atLineEnd = true
		return
	}

	c.atLineStart = c.atLineEnd
	c.pos++
	c.chPrev = c.ch
	c.ch = c.chNext
	c.chNext = c.charAt(c.pos + 1)
	c.atLineEnd = c.lineEndsHere()
}

// ForwardN advances n bytes.
func (c *Cursor) ForwardN(n int) {
	for range n {
		c.Forward()
	}
}

// SetState closes the open span just before the cursor with the current
// state and opens a new span in state.
func (c *Cursor) SetState(state Style) {
	c.acc.ColourTo(c.pos-1, c.State)
	c.State = state
}

// ChangeState retags the open span without closing it.
func (c *Cursor) ChangeState(state Style) {
	c.State = state
}

// ForwardSetState advances one byte and then switches state.
func (c *Cursor) ForwardSetState(state Style) {
	c.Forward()
	c.SetState(state)
}

// Complete closes the final span through the last position reached.
func (c *Cursor) Complete() {
	c.acc.ColourTo(c.pos-1, c.State)
}
