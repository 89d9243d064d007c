package codec

import (
	"encoding/binary"
	"testing"
)

func TestPutUint16(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		value uint16
		want  []byte
	}{
		{"little endian zero", binary.LittleEndian, 0x0000, []byte{0x00, 0x00}},
		{"little endian", binary.LittleEndian, 0x0102, []byte{0x02, 0x01}},
		{"big endian", binary.BigEndian, 0x0102, []byte{0x01, 0x02}},
		{"big endian max", binary.BigEndian, 0xFFFF, []byte{0xFF, 0xFF}},
		{"default pkey", binary.BigEndian, 0xFFFF, []byte{0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 2)
			PutUint16(tt.order, buf, tt.value)
			if buf[0] != tt.want[0] || buf[1] != tt.want[1] {
				t.Errorf("PutUint16() = %v, want %v", buf, tt.want)
			}
			if got := Uint16(tt.order, buf); got != tt.value {
				t.Errorf("Uint16() = 0x%04X, want 0x%04X", got, tt.value)
			}
		})
	}
}

func TestPutUint32(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		value uint32
		want  []byte
	}{
		{"little endian", binary.LittleEndian, 0x01020304, []byte{0x04, 0x03, 0x02, 0x01}},
		{"big endian", binary.BigEndian, 0x01020304, []byte{0x01, 0x02, 0x03, 0x04}},
		{"permissive LID", binary.BigEndian, 0x0000FFFF, []byte{0x00, 0x00, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 4)
			PutUint32(tt.order, buf, tt.value)
			for i := range tt.want {
				if buf[i] != tt.want[i] {
					t.Errorf("PutUint32() = %v, want %v", buf, tt.want)
					break
				}
			}
			if got := Uint32(tt.order, buf); got != tt.value {
				t.Errorf("Uint32() = 0x%08X, want 0x%08X", got, tt.value)
			}
		})
	}
}

func TestPutUint64(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		value uint64
		want  []byte
	}{
		{"little endian", binary.LittleEndian, 0x0102030405060708, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
		{"big endian", binary.BigEndian, 0x0102030405060708, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 8)
			PutUint64(tt.order, buf, tt.value)
			for i := range tt.want {
				if buf[i] != tt.want[i] {
					t.Errorf("PutUint64() = %v, want %v", buf, tt.want)
					break
				}
			}
			if got := Uint64(tt.order, buf); got != tt.value {
				t.Errorf("Uint64() = 0x%016X, want 0x%016X", got, tt.value)
			}
		})
	}
}

func TestIsBigEndian(t *testing.T) {
	if !IsBigEndian(binary.BigEndian) {
		t.Error("BigEndian reported as little")
	}
	if IsBigEndian(binary.LittleEndian) {
		t.Error("LittleEndian reported as big")
	}
}

func TestParseByteOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "big", false},
		{"big", "big", false},
		{"network", "big", false},
		{"Little", "little", false},
		{"le", "little", false},
		{"middle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			order, err := ParseByteOrder(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseByteOrder(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseByteOrder(%q) error: %v", tt.in, err)
			}
			if got := ByteOrderName(order); got != tt.want {
				t.Errorf("ParseByteOrder(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
