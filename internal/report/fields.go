package report

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
)

// Field is one flattened name/value pair of a decoded record.
type Field struct {
	Name  string
	Value string
}

// compactArray is the element count above which arrays of structs are
// printed one element per line instead of being expanded field by field.
const compactArray = 8

// Flatten walks a decoded record and returns its exported fields as dotted
// names in declaration order. Types with a String method print through it,
// byte arrays print as hex.
func Flatten(record any) []Field {
	var out []Field
	if record == nil {
		return out
	}
	flatten("", reflect.ValueOf(record), &out)
	return out
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

func flatten(name string, v reflect.Value, out *[]Field) {
	if !v.IsValid() {
		*out = append(*out, Field{name, "<nil>"})
		return
	}
	if v.Type().Implements(stringerType) && v.Kind() != reflect.Interface {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			*out = append(*out, Field{name, "<nil>"})
			return
		}
		*out = append(*out, Field{name, v.Interface().(fmt.Stringer).String()})
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			*out = append(*out, Field{name, "<nil>"})
			return
		}
		flatten(name, v.Elem(), out)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			flatten(join(name, f.Name), v.Field(i), out)
		}
	case reflect.Array, reflect.Slice:
		flattenList(name, v, out)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		*out = append(*out, Field{name, formatUint(v.Uint(), v.Type().Size())})
	default:
		*out = append(*out, Field{name, fmt.Sprint(v.Interface())})
	}
}

func flattenList(name string, v reflect.Value, out *[]Field) {
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Uint8 {
		b := make([]byte, v.Len())
		for i := range b {
			b[i] = byte(v.Index(i).Uint())
		}
		*out = append(*out, Field{name, hex.EncodeToString(b)})
		return
	}
	if v.Len() == 0 {
		*out = append(*out, Field{name, "[]"})
		return
	}
	if elem.Kind() != reflect.Struct || v.Len() > compactArray {
		if elem.Kind() == reflect.Struct {
			for i := 0; i < v.Len(); i++ {
				*out = append(*out, Field{index(name, i), fmt.Sprintf("%+v", v.Index(i).Interface())})
			}
			return
		}
		*out = append(*out, Field{name, fmt.Sprint(v.Interface())})
		return
	}
	for i := 0; i < v.Len(); i++ {
		flatten(index(name, i), v.Index(i), out)
	}
}

func formatUint(u uint64, size uintptr) string {
	if size >= 8 && u > 0xffff {
		return "0x" + strconv.FormatUint(u, 16)
	}
	return strconv.FormatUint(u, 10)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func index(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
