// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veil-zk/veil/frontend"
	"github.com/veil-zk/veil/groth16"
)

var setupCmd = &cobra.Command{
	Use:   "setup circuit.r1cs",
	Short: "generates proving and verifying keys for a compiled circuit",
	Long: `setup samples a common reference string for the given constraint system and
writes the proving and verifying keys. The toxic waste is generated in-process
and discarded; for production parameters run a multi-party ceremony instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetup,
}

var (
	fSetupPkPath string
	fSetupVkPath string
)

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVar(&fSetupPkPath, "pk", "", "proving key output path (default [circuit].pk)")
	setupCmd.Flags().StringVar(&fSetupVkPath, "vk", "", "verifying key output path (default [circuit].vk)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	circuitPath := args[0]
	pkPath := fSetupPkPath
	if pkPath == "" {
		pkPath = defaultPath(circuitPath, "pk")
	}
	vkPath := fSetupVkPath
	if vkPath == "" {
		vkPath = defaultPath(circuitPath, "vk")
	}

	var r1cs frontend.R1CS
	if err := load(circuitPath, &r1cs); err != nil {
		return err
	}

	pk, vk, err := groth16.Setup(&r1cs)
	if err != nil {
		return err
	}

	if err := save(pkPath, pk); err != nil {
		return err
	}
	if err := save(vkPath, vk); err != nil {
		return err
	}

	fp, err := vk.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "proving key:   %s\nverifying key: %s\nfingerprint:   %s\n",
		pkPath, vkPath, hex.EncodeToString(fp[:]))
	return nil
}
