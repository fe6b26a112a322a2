// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/bassosimone/qname"
	"github.com/bassosimone/qname/internal/config"
	"github.com/bassosimone/qname/internal/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// command holds the state shared by the subcommands.
type command struct {
	cfg *config.Config

	format    string
	logLevel  string
	strict    bool
	idna      bool
	fqdn      bool
	canonical bool
}

func newRootCommand() *cobra.Command {
	c := &command{}

	root := &cobra.Command{
		Use:               "qname",
		Short:             "Convert domain names to and from DNS wire format qnames",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.format, "format", "", "qname format for encode output and decode input: hex or dec")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&c.strict, "strict", false, "reject labels the wire format cannot represent")
	flags.BoolVar(&c.idna, "idna", false, "convert names to ASCII using IDNA before encoding")
	flags.BoolVar(&c.fqdn, "fqdn", false, "print decoded names with a single trailing dot")
	flags.BoolVar(&c.canonical, "canonical", false, "print decoded names lowercased with a single trailing dot")

	root.AddCommand(&cobra.Command{
		Use:   "encode NAME...",
		Short: "Encode domain names to qnames",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runEncode,
	})
	root.AddCommand(&cobra.Command{
		Use:   "decode QNAME...",
		Short: "Decode qnames in the configured format to domain names",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runDecode,
	})

	return root
}

// setup loads the configuration, applies the flags the user set, and
// configures logging.
func (c *command) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = c.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("strict") {
		cfg.Strict = c.strict
	}
	if flags.Changed("idna") {
		cfg.IDNA = c.idna
	}
	if flags.Changed("fqdn") {
		cfg.FQDN = c.fqdn
	}
	if flags.Changed("canonical") {
		cfg.Canonical = c.canonical
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *command) encoder() *qname.Encoder {
	enc := qname.NewEncoder()
	if c.cfg.Strict {
		enc.Flags |= qname.EncodeFlagStrict
	}
	if c.cfg.IDNA {
		enc.Flags |= qname.EncodeFlagIDNA
	}
	return enc
}

func (c *command) decoder() *qname.Decoder {
	dec := qname.NewDecoder()
	if c.cfg.FQDN {
		dec.Flags |= qname.DecodeFlagFQDN
	}
	if c.cfg.Canonical {
		dec.Flags |= qname.DecodeFlagCanonical
	}
	return dec
}

func (c *command) runEncode(cmd *cobra.Command, args []string) error {
	enc := c.encoder()
	for _, name := range args {
		raw, err := enc.Encode(name)
		if err != nil {
			log.L().Debug("cannot encode name", zap.String("name", name), zap.Error(err))
			return fmt.Errorf("encode %q: %w", name, err)
		}
		log.L().Debug("encoded name", zap.String("name", name), zap.Int("bytes", len(raw)), zap.Uint16("flags", enc.Flags))
		fmt.Fprintln(cmd.OutOrStdout(), formatQname(raw, c.cfg.Format))
	}
	return nil
}

func (c *command) runDecode(cmd *cobra.Command, args []string) error {
	dec := c.decoder()
	for _, input := range args {
		raw, err := parseQname(input, c.cfg.Format)
		if err != nil {
			log.L().Debug("cannot parse qname", zap.String("input", input), zap.String("format", c.cfg.Format), zap.Error(err))
			return err
		}
		name, n, err := dec.Decode(raw)
		if err != nil {
			log.L().Debug("cannot decode qname", zap.String("input", input), zap.Error(err))
			return fmt.Errorf("decode %q: %w", input, err)
		}
		if n < len(raw) {
			log.L().Warn("ignoring bytes after the terminator", zap.String("input", input), zap.Int("trailing", len(raw)-n))
		}
		log.L().Debug("decoded qname", zap.String("name", name), zap.Int("consumed", n), zap.Uint16("flags", dec.Flags))
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
