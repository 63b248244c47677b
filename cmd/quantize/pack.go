// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-blockquant/hwy/contrib/q4gemm"
)

var packFlags struct {
	qtype  string
	n, k   int
	ld     int
	input  string
	output string
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack a row-major float32 matrix into the Q4Gemm layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		qtype, err := parseQType(packFlags.qtype)
		if err != nil {
			return err
		}
		if packFlags.ld == 0 {
			packFlags.ld = packFlags.n
		}

		size := q4gemm.PackBSize(qtype, packFlags.n, packFlags.k)
		if size == 0 {
			return fmt.Errorf("qtype %s has no kernel for N=%d K=%d", qtype, packFlags.n, packFlags.k)
		}

		src, err := readFloat32File(packFlags.input, packFlags.k*packFlags.ld)
		if err != nil {
			return err
		}

		dst := make([]byte, size)
		q4gemm.PackB(qtype, dst, src, packFlags.n, packFlags.k, packFlags.ld)
		return os.WriteFile(packFlags.output, dst, 0o644)
	},
}

var unpackCmd = &cobra.Command{
	Use:   "unpack",
	Short: "Unpack a Q4Gemm-layout buffer back to a row-major float32 matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		qtype, err := parseQType(packFlags.qtype)
		if err != nil {
			return err
		}
		if packFlags.ld == 0 {
			packFlags.ld = packFlags.n
		}

		size := q4gemm.PackBSize(qtype, packFlags.n, packFlags.k)
		if size == 0 {
			return fmt.Errorf("qtype %s has no kernel for N=%d K=%d", qtype, packFlags.n, packFlags.k)
		}

		src, err := os.ReadFile(packFlags.input)
		if err != nil {
			return err
		}
		if len(src) != size {
			return fmt.Errorf("%s: expected %d packed bytes, got %d", packFlags.input, size, len(src))
		}

		dst := make([]float32, packFlags.k*packFlags.ld)
		q4gemm.UnpackB(qtype, dst, src, packFlags.n, packFlags.k, packFlags.ld)
		return writeFloat32File(packFlags.output, dst)
	},
}

func init() {
	for _, c := range []*cobra.Command{packCmd, unpackCmd} {
		c.Flags().StringVar(&packFlags.qtype, "qtype", "sym", "block layout: sym, asym, sym64, sym128, symf16, asymf16")
		c.Flags().IntVar(&packFlags.n, "n", 0, "number of columns")
		c.Flags().IntVar(&packFlags.k, "k", 0, "number of rows (K dimension)")
		c.Flags().IntVar(&packFlags.ld, "ld", 0, "source leading dimension (defaults to n)")
		c.Flags().StringVar(&packFlags.input, "in", "", "input file")
		c.Flags().StringVar(&packFlags.output, "out", "", "output file")
		c.MarkFlagRequired("n")
		c.MarkFlagRequired("k")
		c.MarkFlagRequired("in")
		c.MarkFlagRequired("out")
	}
}
