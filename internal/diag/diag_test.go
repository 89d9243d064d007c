package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCollectorDiscards(t *testing.T) {
	var c *Collector
	c.Add(LookupMiss("NodeType", "0x07", "Unknown"))
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Items())
	assert.Equal(t, 0, c.Count(KindLookupMiss))
	c.Reset()
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.Add(LookupMiss("PowerClass", "high=1 low=2", "UNDEFINED"))
	c.Add(ParseFailure("DateCode", "99AB01", errors.New("bad month")))
	c.Add(LookupMiss("CableType", "connector=0x07 tech=0xA", "UNDEFINED"))

	require.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Count(KindLookupMiss))
	assert.Equal(t, 1, c.Count(KindParseFailure))

	items := c.Items()
	items[0].Source = "mutated"
	assert.Equal(t, "PowerClass", c.Items()[0].Source, "Items must return a copy")

	c.Reset()
	assert.Equal(t, 0, c.Len())
}

func TestDiagnosticString(t *testing.T) {
	d := LookupMiss("ModuleType", "0x7F", "UNDEFINED")
	assert.Equal(t, "lookup_miss ModuleType [0x7F]: no ModuleType entry for 0x7F, using UNDEFINED", d.String())

	d = Diagnostic{Kind: KindParseFailure, Source: "DateCode", Message: "empty"}
	assert.Equal(t, "parse_failure DateCode: empty", d.String())
}
