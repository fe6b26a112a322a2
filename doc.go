// SPDX-License-Identifier: GPL-3.0-or-later

// Package qname converts domain names to and from the DNS wire
// format label sequence used in the question section (the "qname").
//
// [Encode] and [*Encoder] turn a dotted name into length-prefixed labels
// followed by a zero-length terminator. [Decode], [DecodeLabels] and
// [*Decoder] walk such a sequence back into a dotted name.
//
// Both directions map each character to exactly one byte using its code
// point. By default nothing is validated: a label longer than 255
// characters wraps its length byte and a code point above 0xFF loses its
// high bits. Use [EncodeFlagStrict] to reject such names instead.
//
// [Decode] reproduces the historical output of the tool this package
// replaces, which also emits a separator for the terminator, so that
// "google.com" decodes to "google.com..". Use [DecodeFlagFQDN] with a
// [*Decoder] to obtain the conventional "google.com." form.
//
// This package does not handle compression pointers and does not enforce
// the 63 octets label limit. Use [github.com/miekg/dns] for that.
package qname
