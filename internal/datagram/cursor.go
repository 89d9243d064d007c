package datagram

// Cursor walks a View sequentially. It is a local helper: decoders create
// one per call, so the position never outlives the decode.
type Cursor struct {
	v   View
	pos int
}

// NewCursor starts a cursor at the beginning of v.
func NewCursor(v View) *Cursor {
	return &Cursor{v: v}
}

// Pos returns the current offset within the view.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return c.v.Len() - c.pos }

// Skip advances past n reserved bytes.
func (c *Cursor) Skip(n int) { c.pos += n }

func (c *Cursor) U8() uint8 {
	x := c.v.U8(c.pos)
	c.pos++
	return x
}

func (c *Cursor) U16() uint16 {
	x := c.v.U16(c.pos)
	c.pos += 2
	return x
}

func (c *Cursor) U32() uint32 {
	x := c.v.U32(c.pos)
	c.pos += 4
	return x
}

func (c *Cursor) U64() uint64 {
	x := c.v.U64(c.pos)
	c.pos += 8
	return x
}

// Read fills dst from the current position.
func (c *Cursor) Read(dst []byte) {
	c.v.CopyTo(c.pos, dst)
	c.pos += len(dst)
}

// String reads a fixed-width text field.
func (c *Cursor) String(n int) string {
	s := c.v.String(c.pos, n)
	c.pos += n
	return s
}

// View returns the next n bytes as a sub-view and advances past them.
func (c *Cursor) View(n int) View {
	sub := c.v.Slice(c.pos, n)
	c.pos += n
	return sub
}

func (c *Cursor) PutU8(x uint8) {
	c.v.PutU8(c.pos, x)
	c.pos++
}

func (c *Cursor) PutU16(x uint16) {
	c.v.PutU16(c.pos, x)
	c.pos += 2
}

func (c *Cursor) PutU32(x uint32) {
	c.v.PutU32(c.pos, x)
	c.pos += 4
}

func (c *Cursor) PutU64(x uint64) {
	c.v.PutU64(c.pos, x)
	c.pos += 8
}

// Write copies src at the current position.
func (c *Cursor) Write(src []byte) {
	c.v.PutBytes(c.pos, src)
	c.pos += len(src)
}

// PutString writes a fixed-width text field.
func (c *Cursor) PutString(n int, s string, padSpace bool) {
	c.v.PutString(c.pos, n, s, padSpace)
	c.pos += n
}
