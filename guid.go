package wrc

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type GUID [16]byte

func (self GUID) String() string {
	return fmt.Sprintf("{%08X-%04X-%04X-%X-%X}",
		binary.LittleEndian.Uint32(self[0:4]),
		binary.LittleEndian.Uint16(self[4:6]),
		binary.LittleEndian.Uint16(self[6:8]),
		self[8:10], self[10:16])
}

func (self GUID) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Equal compares against the textual form, braces optional.
func (self GUID) Equal(value string) bool {
	value = strings.Trim(strings.TrimSpace(value), "{}")
	return strings.EqualFold(strings.Trim(self.String(), "{}"), value)
}
