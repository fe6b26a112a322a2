// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// errInvalidInput means a command line qname does not match the configured format.
var errInvalidInput = errors.New("invalid qname input")

// formatQname renders raw as lowercase hex or as comma separated decimals.
func formatQname(raw []byte, format string) string {
	if format == "hex" {
		return hex.EncodeToString(raw)
	}
	fields := make([]string, len(raw))
	for idx, b := range raw {
		fields[idx] = strconv.Itoa(int(b))
	}
	return strings.Join(fields, ",")
}

// parseQname reads input in the given format, the inverse of [formatQname].
// The "dec" format also accepts the bracketed form printed by fmt for byte
// slices, with commas or spaces between values.
func parseQname(input, format string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if format == "hex" {
		raw, err := hex.DecodeString(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidInput, err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: empty", errInvalidInput)
		}
		return raw, nil
	}

	input = strings.TrimSuffix(strings.TrimPrefix(input, "["), "]")
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", errInvalidInput)
	}
	raw := make([]byte, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidInput, err)
		}
		raw = append(raw, byte(value))
	}
	return raw, nil
}
