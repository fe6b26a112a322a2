//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/dnscodec/blob/main/response.go
//

package qname

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

const (
	// DecodeFlagFQDN emits a single trailing dot instead of two.
	DecodeFlagFQDN = 1 << iota

	// DecodeFlagCanonical emits the lowercase FQDN form. Implies [DecodeFlagFQDN].
	DecodeFlagCanonical
)

// ErrTruncatedInput means the qname ends before its terminator or a
// label declares more bytes than the input contains.
var ErrTruncatedInput = errors.New("truncated qname")

// DecodeLabels scans the qname at the beginning of data.
//
// It returns the labels preceding the terminator, without the terminator
// itself, along with the number of bytes consumed including the terminator.
// Bytes following the terminator are not inspected. Each byte of a label is
// interpreted as a code point in the 0x00-0xFF range.
func DecodeLabels(data []byte) ([]string, int, error) {
	labels := []string{}
	off := 0
	for {
		if off >= len(data) {
			return nil, 0, fmt.Errorf("%w: missing length at offset %d", ErrTruncatedInput, off)
		}
		count := int(data[off])
		off++
		if count > len(data)-off {
			return nil, 0, fmt.Errorf("%w: label at offset %d needs %d bytes, %d available",
				ErrTruncatedInput, off-1, count, len(data)-off)
		}
		if count == 0 {
			return labels, off, nil
		}
		labels = append(labels, decodeLabel(data[off:off+count]))
		off += count
	}
}

func decodeLabel(raw []byte) string {
	runes := make([]rune, len(raw))
	for idx, b := range raw {
		runes[idx] = rune(b)
	}
	return string(runes)
}

// Decode returns the dotted name for the qname at the beginning of data.
//
// Every label is followed by a separator, and so is the terminator, which
// means "google.com" decodes to "google.com.." and the root name decodes
// to ".". Use a [*Decoder] with [DecodeFlagFQDN] for the usual form.
func Decode(data []byte) (string, error) {
	labels, _, err := DecodeLabels(data)
	if err != nil {
		return "", err
	}
	return decodeJoinLiteral(labels), nil
}

func decodeJoinLiteral(labels []string) string {
	var sb strings.Builder
	for _, label := range labels {
		sb.WriteString(label)
		sb.WriteByte('.')
	}
	sb.WriteByte('.')
	return sb.String()
}

// Decoder decodes qnames to domain names.
//
// Construct using [NewDecoder] or use the zero value.
type Decoder struct {
	// Flags OPTIONALLY modify the decoded name.
	//
	// Use [DecodeFlagFQDN] and [DecodeFlagCanonical].
	Flags uint16
}

// NewDecoder returns a new [*Decoder] that behaves like [Decode].
func NewDecoder() *Decoder {
	return &Decoder{Flags: 0}
}

// Clone returns a copy of the decoder.
func (d *Decoder) Clone() *Decoder {
	return &Decoder{Flags: d.Flags}
}

// Decode returns the name for the qname at the beginning of data and
// the number of bytes consumed, terminator included.
func (d *Decoder) Decode(data []byte) (string, int, error) {
	labels, n, err := DecodeLabels(data)
	if err != nil {
		return "", 0, err
	}
	switch {
	case d.Flags&DecodeFlagCanonical != 0:
		return dns.CanonicalName(strings.Join(labels, ".")), n, nil
	case d.Flags&DecodeFlagFQDN != 0:
		return dns.Fqdn(strings.Join(labels, ".")), n, nil
	default:
		return decodeJoinLiteral(labels), n, nil
	}
}
