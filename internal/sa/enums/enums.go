// Package enums holds the closed code tables used while decoding SA records.
//
// Every table is built once at package initialization and only read
// afterwards, so lookups are safe for unsynchronized concurrent use. Lookup
// functions are pure and report misses through their second result; the
// Resolve variants return the table's sentinel on a miss and add a
// diagnostic to the supplied collector.
package enums

import (
	"fmt"

	"github.com/tturner/sadecode/internal/diag"
)

// Undefined is the display name shared by the cable-family sentinels.
const Undefined = "UNDEFINED"

func hex8(code uint8) string {
	return fmt.Sprintf("0x%02X", code)
}

func unknownName(code uint8) string {
	return fmt.Sprintf("Unknown(0x%02X)", code)
}

func miss(c *diag.Collector, table, code, sentinel string) {
	c.Add(diag.LookupMiss(table, code, sentinel))
}
