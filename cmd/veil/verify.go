// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/spf13/cobra"

	"github.com/veil-zk/veil/groth16"
)

var verifyCmd = &cobra.Command{
	Use:   "verify proof.bin",
	Short: "verifies a proof against a verifying key and public inputs",
	Long: `verify checks a proof. Public inputs are passed as a comma-separated list of
field elements (decimal, or hexadecimal with an 0x prefix) in the order the
circuit allocated them.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

var (
	fVerifyVkPath string
	fVerifyInputs string
)

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fVerifyVkPath, "vk", "", "verifying key path")
	verifyCmd.Flags().StringVar(&fVerifyInputs, "input", "", "comma-separated public inputs")
	_ = verifyCmd.MarkFlagRequired("vk")
}

func parseInputs(s string) ([]fr.Element, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	inputs := make([]fr.Element, len(parts))
	for i, p := range parts {
		if _, err := inputs[i].SetString(strings.TrimSpace(p)); err != nil {
			return nil, fmt.Errorf("bad public input %q: %w", p, err)
		}
	}
	return inputs, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	var vk groth16.VerifyingKey
	if err := load(fVerifyVkPath, &vk); err != nil {
		return err
	}
	var proof groth16.Proof
	if err := load(args[0], &proof); err != nil {
		return err
	}
	inputs, err := parseInputs(fVerifyInputs)
	if err != nil {
		return err
	}

	ok, err := groth16.Verify(&proof, &vk, inputs)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("proof did not verify")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "proof verified")
	return nil
}
