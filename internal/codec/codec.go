// Package codec holds the byte-order aware scalar helpers shared by the
// SA record decoders. Every helper takes the byte order explicitly so the
// order chosen at bind time reaches every multi-byte read and write.
package codec

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// PutUint16 writes a uint16 to dst using the provided byte order.
func PutUint16(order binary.ByteOrder, dst []byte, value uint16) {
	order.PutUint16(dst, value)
}

// PutUint32 writes a uint32 to dst using the provided byte order.
func PutUint32(order binary.ByteOrder, dst []byte, value uint32) {
	order.PutUint32(dst, value)
}

// PutUint64 writes a uint64 to dst using the provided byte order.
func PutUint64(order binary.ByteOrder, dst []byte, value uint64) {
	order.PutUint64(dst, value)
}

// Uint16 reads a uint16 from src using the provided byte order.
func Uint16(order binary.ByteOrder, src []byte) uint16 {
	return order.Uint16(src)
}

// Uint32 reads a uint32 from src using the provided byte order.
func Uint32(order binary.ByteOrder, src []byte) uint32 {
	return order.Uint32(src)
}

// Uint64 reads a uint64 from src using the provided byte order.
func Uint64(order binary.ByteOrder, src []byte) uint64 {
	return order.Uint64(src)
}

// IsBigEndian reports whether order stores the most significant byte first.
// It probes the order instead of comparing identities so wrapped or
// third-party ByteOrder values classify correctly.
func IsBigEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 0x0001)
	return probe[1] == 0x01
}

// ParseByteOrder maps a configuration string to a byte order.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "big", "be", "network", "big_endian", "big-endian":
		return binary.BigEndian, nil
	case "little", "le", "little_endian", "little-endian":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (expected big or little)", s)
	}
}

// ByteOrderName returns "big" or "little" for order.
func ByteOrderName(order binary.ByteOrder) string {
	if IsBigEndian(order) {
		return "big"
	}
	return "little"
}
