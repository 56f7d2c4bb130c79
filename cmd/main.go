// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// config controls which sections parsePE prints for a given input file.
type config struct {
	wantDOSHeader   bool
	wantNTHeader    bool
	wantSections    bool
	wantCertificate bool
	wantCLR         bool
	wantCLRTables   bool
	wantCLRMethods  bool
}

func (c config) any() bool {
	return c.wantDOSHeader || c.wantNTHeader || c.wantSections ||
		c.wantCertificate || c.wantCLR || c.wantCLRTables || c.wantCLRMethods
}

func allConfig() config {
	return config{
		wantDOSHeader:   true,
		wantNTHeader:    true,
		wantSections:    true,
		wantCertificate: true,
		wantCLR:         true,
		wantCLRTables:   true,
		wantCLRMethods:  true,
	}
}

func main() {
	var cfg config
	var all bool

	var dumpCmd = &cobra.Command{
		Use:   "dump [file or directory]",
		Short: "Dumps interesting structures of a Portable Executable / CLI image",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if all {
				cfg = allConfig()
			}
			if !cfg.any() {
				cfg.wantDOSHeader = true
				cfg.wantNTHeader = true
				cfg.wantCLR = true
			}
			parse(args[0], cfg)
		},
	}

	dumpCmd.Flags().BoolVar(&cfg.wantDOSHeader, "dosheader", false, "dump the DOS header")
	dumpCmd.Flags().BoolVar(&cfg.wantNTHeader, "ntheader", false, "dump the NT header")
	dumpCmd.Flags().BoolVar(&cfg.wantSections, "sections", false, "dump section headers")
	dumpCmd.Flags().BoolVar(&cfg.wantCertificate, "cert", false, "dump the certificate directory")
	dumpCmd.Flags().BoolVar(&cfg.wantCLR, "clr", false, "dump the CLI/.NET header and metadata streams")
	dumpCmd.Flags().BoolVar(&cfg.wantCLRTables, "tables", false, "dump metadata table row counts")
	dumpCmd.Flags().BoolVar(&cfg.wantCLRMethods, "methods", false, "disassemble every decoded method body")
	dumpCmd.Flags().BoolVar(&all, "all", false, "dump everything")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("clidecoder 0.1.0")
		},
	}

	var rootCmd = &cobra.Command{
		Use:   "clidecoder",
		Short: "A PE / ECMA-335 CLI metadata parser",
	}
	rootCmd.AddCommand(dumpCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
