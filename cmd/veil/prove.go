// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veil-zk/veil/frontend"
	"github.com/veil-zk/veil/groth16"
)

var proveCmd = &cobra.Command{
	Use:   "prove circuit.r1cs",
	Short: "creates a proof for a compiled circuit and a witness",
	Args:  cobra.ExactArgs(1),
	RunE:  runProve,
}

var (
	fProvePkPath      string
	fProveWitnessPath string
	fProveProofPath   string
	fProveSerial      bool
)

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&fProvePkPath, "pk", "", "proving key path (default [circuit].pk)")
	proveCmd.Flags().StringVar(&fProveWitnessPath, "witness", "", "witness path (default [circuit].witness)")
	proveCmd.Flags().StringVar(&fProveProofPath, "proof", "", "proof output path (default [circuit].proof)")
	proveCmd.Flags().BoolVar(&fProveSerial, "serial", false, "disable parallelism")
}

func runProve(cmd *cobra.Command, args []string) error {
	circuitPath := args[0]
	pkPath := fProvePkPath
	if pkPath == "" {
		pkPath = defaultPath(circuitPath, "pk")
	}
	witnessPath := fProveWitnessPath
	if witnessPath == "" {
		witnessPath = defaultPath(circuitPath, "witness")
	}
	proofPath := fProveProofPath
	if proofPath == "" {
		proofPath = defaultPath(circuitPath, "proof")
	}

	var r1cs frontend.R1CS
	if err := load(circuitPath, &r1cs); err != nil {
		return err
	}
	var pk groth16.ProvingKey
	if err := load(pkPath, &pk); err != nil {
		return err
	}
	var witness frontend.Witness
	if err := load(witnessPath, &witness); err != nil {
		return err
	}

	var opts []groth16.Option
	if fProveSerial {
		opts = append(opts, groth16.WithoutParallelism())
	}
	proof, err := groth16.Prove(&r1cs, &pk, &witness, opts...)
	if err != nil {
		return err
	}

	if err := save(proofPath, proof); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "proof: %s\n", proofPath)
	return nil
}
