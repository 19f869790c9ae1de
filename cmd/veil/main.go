// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// veil is a CLI for the proving engine: it generates parameters, proves and
// verifies over serialized artifacts. Circuits are compiled by Go programs
// using the frontend package; this tool picks up where they leave off.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	veil "github.com/veil-zk/veil"
)

var rootCmd = &cobra.Command{
	Use:           "veil",
	Short:         "zk-SNARK proving engine over BN254",
	Version:       veil.Version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultPath derives an artifact path next to the circuit file:
// circuit.r1cs -> circuit.ext
func defaultPath(circuitPath, ext string) string {
	base := filepath.Base(circuitPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(circuitPath), base+"."+ext)
}

func load(path string, v io.ReaderFrom) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := v.ReadFrom(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func save(path string, v io.WriterTo) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if _, err := v.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
