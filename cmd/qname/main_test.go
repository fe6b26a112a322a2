// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/bassosimone/qname"
	"github.com/bassosimone/qname/internal/log"
	"github.com/bassosimone/runtimex"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	orig := log.L()
	t.Cleanup(func() { log.SetLogger(orig) })

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "DecimalDefault",
			args:     []string{"encode", "google.com"},
			expected: "6,103,111,111,103,108,101,3,99,111,109,0\n",
		},

		{
			name:     "Hex",
			args:     []string{"encode", "--format", "hex", "google.com"},
			expected: "06676f6f676c6503636f6d00\n",
		},

		{
			name:     "MultipleNames",
			args:     []string{"encode", "a.bb.ccc", ""},
			expected: "1,97,2,98,98,3,99,99,99,0\n0,0\n",
		},

		{
			name:     "IDNA",
			args:     []string{"encode", "--idna", "--format", "hex", "bücher.example"},
			expected: "0d786e2d2d62636865722d6b7661076578616d706c6500\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

func TestEncodeCommandStrict(t *testing.T) {
	long := strings.Repeat("a", 256)

	out, err := runCommand(t, "encode", long)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "0,97,"))

	_, err = runCommand(t, "encode", "--strict", long)
	require.ErrorIs(t, err, qname.ErrLabelTooLong)
}

func TestEncodeCommandStrictFromEnv(t *testing.T) {
	t.Setenv("QNAME_STRICT", "true")

	_, err := runCommand(t, "encode", "price.€")
	require.ErrorIs(t, err, qname.ErrNonRepresentable)

	// the flag takes precedence over the environment
	_, err = runCommand(t, "encode", "--strict=false", "price.€")
	require.NoError(t, err)
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "Decimal",
			args:     []string{"decode", "6,103,111,111,103,108,101,3,99,111,109,0"},
			expected: "google.com..\n",
		},

		{
			name:     "Hex",
			args:     []string{"decode", "--format", "hex", "06676f6f676c6503636f6d00"},
			expected: "google.com..\n",
		},

		{
			name:     "Bracketed",
			args:     []string{"decode", "[1 97 2 98 98 3 99 99 99 0]"},
			expected: "a.bb.ccc..\n",
		},

		{
			name:     "FQDN",
			args:     []string{"decode", "--format", "hex", "--fqdn", "06676f6f676c6503636f6d00"},
			expected: "google.com.\n",
		},

		{
			name:     "Canonical",
			args:     []string{"decode", "--canonical", "3,87,87,87,0"},
			expected: "www.\n",
		},

		{
			name:     "RootDecimal",
			args:     []string{"decode", "0"},
			expected: ".\n",
		},

		{
			name:     "RootHex",
			args:     []string{"decode", "--format", "hex", "00"},
			expected: ".\n",
		},

		{
			name:     "TrailingBytes",
			args:     []string{"decode", "3,99,111,109,0,0,1,0,1"},
			expected: "com..\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	_, err := runCommand(t, "decode", "6,103,111")
	require.ErrorIs(t, err, qname.ErrTruncatedInput)

	_, err = runCommand(t, "decode", "zz")
	require.ErrorIs(t, err, errInvalidInput)

	// a hex string is not a decimal qname
	_, err = runCommand(t, "decode", "06676f6f676c6503636f6d00")
	require.ErrorIs(t, err, errInvalidInput)

	_, err = runCommand(t, "decode", "--format", "hex", "6,103,111")
	require.ErrorIs(t, err, errInvalidInput)

	// a single decimal token is one byte, never hex
	_, err = runCommand(t, "decode", "10")
	require.ErrorIs(t, err, qname.ErrTruncatedInput)

	_, err = runCommand(t, "decode", "1,256,0")
	require.ErrorIs(t, err, errInvalidInput)

	_, err = runCommand(t, "decode")
	require.Error(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := runCommand(t, "encode", "--format", "base64", "google.com")
	require.ErrorContains(t, err, "validation failed")

	t.Setenv("QNAME_LOG_LEVEL", "verbose")
	_, err = runCommand(t, "encode", "google.com")
	require.ErrorContains(t, err, "validation failed")
}

func TestFormatQname(t *testing.T) {
	raw := qname.Encode("a.bb")
	require.Equal(t, "1,97,2,98,98,0", formatQname(raw, "dec"))
	require.Equal(t, hex.EncodeToString(raw), formatQname(raw, "hex"))
}

func TestParseQname(t *testing.T) {
	expected := runtimex.PanicOnError1(hex.DecodeString("016102626200"))

	tests := []struct {
		name     string
		format   string
		input    string
		expected []byte
		wantErr  bool
	}{
		{"Hex", "hex", "016102626200", expected, false},
		{"HexSpaces", "hex", " 016102626200 ", expected, false},
		{"HexRoot", "hex", "00", []byte{0}, false},
		{"Decimal", "dec", "1,97,2,98,98,0", expected, false},
		{"DecimalSpaces", "dec", " 1, 97, 2, 98, 98, 0 ", expected, false},
		{"Bracketed", "dec", "[1 97 2 98 98 0]", expected, false},
		{"DecimalRoot", "dec", "0", []byte{0}, false},
		{"DecimalSingleToken", "dec", "10", []byte{10}, false},
		{"HexEmpty", "hex", "", nil, true},
		{"DecimalEmpty", "dec", "", nil, true},
		{"EmptyBrackets", "dec", "[]", nil, true},
		{"OddHex", "hex", "016", nil, true},
		{"DecimalAsHex", "hex", "1,97", nil, true},
		{"HexAsDecimal", "dec", "0a", nil, true},
		{"Overflow", "dec", "1,300", nil, true},
		{"Negative", "dec", "1,-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := parseQname(tt.input, tt.format)
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, raw)
		})
	}
}

func TestParseQnameInvertsFormatQname(t *testing.T) {
	for _, format := range []string{"hex", "dec"} {
		for _, raw := range [][]byte{{0}, {0, 0}, qname.Encode("google.com")} {
			got, err := parseQname(formatQname(raw, format), format)
			require.NoError(t, err)
			require.Equal(t, raw, got)
		}
	}
}
