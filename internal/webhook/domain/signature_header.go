package domain

import (
	"strconv"
	"strings"
)

// Signature header keys.
const (
	TimestampKey = "t"
	SignatureKey = "v1"
)

// SignatureHeader is the parsed form of a header such as
//
//	t=1700000000,v1=5257a869...,v1=9f3c...
//
// Several v1 values may be present while the sender rotates its secret.
type SignatureHeader struct {
	Timestamp  int64
	Signatures []string
}

// String formats the header in wire form.
func (h SignatureHeader) String() string {
	var b strings.Builder
	b.WriteString(TimestampKey)
	b.WriteByte('=')
	b.WriteString(strconv.FormatInt(h.Timestamp, 10))
	for _, sig := range h.Signatures {
		b.WriteByte(',')
		b.WriteString(SignatureKey)
		b.WriteByte('=')
		b.WriteString(sig)
	}
	return b.String()
}
