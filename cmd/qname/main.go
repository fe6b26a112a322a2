// SPDX-License-Identifier: GPL-3.0-or-later

// Command qname converts domain names to and from DNS wire format qnames.
//
// Usage:
//
//	qname encode google.com
//	qname decode 6,103,111,111,103,108,101,3,99,111,109,0
//	qname decode --format hex --fqdn 06676f6f676c6503636f6d00
//
// Defaults come from QNAME_* environment variables (see internal/config)
// and are overridden by the command line flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qname: %s\n", err.Error())
		os.Exit(1)
	}
}
