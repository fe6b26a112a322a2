//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/dnscodec/blob/main/query.go
//

package qname

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const (
	// EncodeFlagStrict rejects names that the wire format cannot represent.
	EncodeFlagStrict = 1 << iota

	// EncodeFlagIDNA converts the name to ASCII using IDNA lookup rules.
	EncodeFlagIDNA
)

const (
	// MaxLabelWireLength is the largest label length a length byte can hold.
	MaxLabelWireLength = 255

	// MaxCodePoint is the largest code point that fits a single byte.
	MaxCodePoint = 0xFF
)

// Errors emitted by [*Encoder.Encode].
var (
	// ErrLabelTooLong means a label has more than [MaxLabelWireLength] characters.
	ErrLabelTooLong = errors.New("label too long")

	// ErrNonRepresentable means a label contains a character above [MaxCodePoint]
	// or a byte sequence that is not valid UTF-8.
	ErrNonRepresentable = errors.New("character not representable as a single byte")

	// ErrInvalidName means the IDNA conversion failed.
	ErrInvalidName = errors.New("invalid domain name")
)

// Encode returns the qname for name without performing any check.
//
// The name is split on "." and each label, including empty ones, is
// written as a length byte followed by one byte per character. A final
// zero byte terminates the sequence. Lengths and code points that do not
// fit a byte are truncated to their low eight bits.
func Encode(name string) []byte {
	out := make([]byte, 0, len(name)+2)
	for _, label := range strings.Split(name, ".") {
		out = append(out, byte(utf8.RuneCountInString(label)))
		for _, r := range label {
			out = append(out, byte(r))
		}
	}
	return append(out, 0)
}

// Encoder encodes domain names to qnames.
//
// Construct using [NewEncoder] or use the zero value.
type Encoder struct {
	// Flags OPTIONALLY modify how names are encoded.
	//
	// Use [EncodeFlagStrict] and [EncodeFlagIDNA].
	Flags uint16
}

// NewEncoder returns a new [*Encoder] that behaves like [Encode].
func NewEncoder() *Encoder {
	return &Encoder{Flags: 0}
}

// Clone returns a copy of the encoder.
func (e *Encoder) Clone() *Encoder {
	return &Encoder{Flags: e.Flags}
}

// Encode returns the qname for name according to the encoder flags.
//
// Without flags this method is equivalent to [Encode] and never fails.
func (e *Encoder) Encode(name string) ([]byte, error) {
	if e.Flags&EncodeFlagIDNA != 0 {
		asciiName, err := idna.Lookup.ToASCII(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
		}
		name = asciiName
	}
	if e.Flags&EncodeFlagStrict != 0 {
		if err := encoderCheckName(name); err != nil {
			return nil, err
		}
	}
	return Encode(name), nil
}

// encoderCheckName returns an error if a label of name would not survive
// a round trip through the wire format.
func encoderCheckName(name string) error {
	for idx, label := range strings.Split(name, ".") {
		count := 0
		for len(label) > 0 {
			r, size := utf8.DecodeRuneInString(label)
			if r == utf8.RuneError && size <= 1 {
				return fmt.Errorf("%w: label %d has invalid UTF-8", ErrNonRepresentable, idx)
			}
			if r > MaxCodePoint {
				return fmt.Errorf("%w: label %d has %U", ErrNonRepresentable, idx, r)
			}
			label = label[size:]
			count++
		}
		if count > MaxLabelWireLength {
			return fmt.Errorf("%w: label %d has %d characters", ErrLabelTooLong, idx, count)
		}
	}
	return nil
}
