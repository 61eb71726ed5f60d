package models

import "time"

// Frame is one unit of captured data. Consumers treat Data as opaque.
type Frame struct {
	Timestamp time.Time
	Data      []byte
	Length    int // Original length on the wire, may exceed len(Data) when truncated by snaplen
}
