package enums

import (
	"fmt"
	"strings"
)

// Display tables for PortInfo, PathRecord and SMInfo codes. These never feed
// decoded values; they only render them, so a miss renders as Unknown(0x..).

var portStateNames = map[uint8]string{
	0: "No state change",
	1: "Down",
	2: "Init",
	3: "Armed",
	4: "Active",
}

// PortStateName names a PortInfo PortState.
func PortStateName(code uint8) string {
	if name, ok := portStateNames[code]; ok {
		return name
	}
	return unknownName(code)
}

var physStateNames = map[uint8]string{
	0:  "No state change",
	2:  "Polling",
	3:  "Disabled",
	4:  "Training",
	5:  "LinkUp",
	6:  "LinkErrorRecovery",
	9:  "Offline",
	11: "Test",
}

// PhysStateName names a PortInfo PortPhysicalState.
func PhysStateName(code uint8) string {
	if name, ok := physStateNames[code]; ok {
		return name
	}
	return unknownName(code)
}

// Link speed bits (PortInfo LinkSpeed masks).
const (
	LinkSpeed12G uint16 = 0x0001
	LinkSpeed25G uint16 = 0x0002
	LinkSpeed50G uint16 = 0x0004
)

var linkSpeedBits = []struct {
	bit  uint16
	name string
}{
	{LinkSpeed12G, "12.5Gb"},
	{LinkSpeed25G, "25Gb"},
	{LinkSpeed50G, "50Gb"},
}

// LinkSpeedName renders a link speed mask, e.g. "12.5Gb,25Gb".
func LinkSpeedName(mask uint16) string {
	return maskNames(uint64(mask), func(yield func(bit uint64, name string)) {
		for _, b := range linkSpeedBits {
			yield(uint64(b.bit), b.name)
		}
	})
}

// LinkWidthName renders a link width mask, e.g. "1X,4X".
func LinkWidthName(mask uint16) string {
	return maskNames(uint64(mask), func(yield func(bit uint64, name string)) {
		for i := 0; i < 4; i++ {
			yield(1<<uint(i), fmt.Sprintf("%dX", i+1))
		}
	})
}

func maskNames(mask uint64, each func(func(bit uint64, name string))) string {
	if mask == 0 {
		return "None"
	}
	var names []string
	rest := mask
	each(func(bit uint64, name string) {
		if mask&bit != 0 {
			names = append(names, name)
			rest &^= bit
		}
	})
	if rest != 0 {
		names = append(names, fmt.Sprintf("Unknown(0x%X)", rest))
	}
	return strings.Join(names, ",")
}

var mtuNames = map[uint8]string{
	1: "256",
	2: "512",
	3: "1024",
	4: "2048",
	5: "4096",
	6: "8192",
	7: "10240",
}

// MTUName renders an MTU code in bytes.
func MTUName(code uint8) string {
	if name, ok := mtuNames[code]; ok {
		return name
	}
	return unknownName(code)
}

var rateNames = map[uint8]string{
	2:  "2.5 Gb/s",
	3:  "10 Gb/s",
	4:  "30 Gb/s",
	5:  "5 Gb/s",
	6:  "20 Gb/s",
	7:  "40 Gb/s",
	8:  "60 Gb/s",
	9:  "80 Gb/s",
	10: "120 Gb/s",
	11: "14 Gb/s",
	12: "56 Gb/s",
	13: "112 Gb/s",
	14: "168 Gb/s",
	15: "25 Gb/s",
	16: "100 Gb/s",
	17: "200 Gb/s",
	18: "300 Gb/s",
}

// RateName renders a PathRecord rate code.
func RateName(code uint8) string {
	if name, ok := rateNames[code]; ok {
		return name
	}
	return unknownName(code)
}

// Subnet manager states (SMInfo SMStateCurrent).
const (
	SMStateNotActive uint8 = iota
	SMStateDiscovering
	SMStateStandby
	SMStateMaster
)

var smStateNames = [...]string{
	"NotActive",
	"Discovering",
	"Standby",
	"Master",
}

// SMStateName names an SMInfo state.
func SMStateName(code uint8) string {
	if int(code) < len(smStateNames) {
		return smStateNames[code]
	}
	return unknownName(code)
}

// SelectorName renders a PathRecord selector.
func SelectorName(code uint8) string {
	switch code {
	case 0:
		return ">"
	case 1:
		return "<"
	case 2:
		return "="
	case 3:
		return "largest"
	default:
		return unknownName(code)
	}
}
