package wrc

import (
	"time"
)

// Resource directories carry a 32 bit POSIX timestamp, mostly zero.
type UnixTimeStamp struct {
	time.Time
}

func NewUnixTimeStamp(timestamp uint32) UnixTimeStamp {
	return UnixTimeStamp{time.Unix(int64(timestamp), 0)}
}

func (self UnixTimeStamp) DebugString() string {
	return self.String()
}

func (self UnixTimeStamp) String() string {
	result, _ := self.UTC().MarshalText()
	return string(result)
}

func (self UnixTimeStamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + self.String() + `"`), nil
}
