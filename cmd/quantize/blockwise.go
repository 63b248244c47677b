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
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-blockquant/hwy/contrib/blockwise"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

var blockwiseFlags struct {
	blockSize   int
	columnwise  bool
	asymmetric  bool
	rows, cols  int
	ld          int
	input       string
	outData     string
	outScales   string
	outZP       string
}

var blockwiseQuantizeCmd = &cobra.Command{
	Use:   "blockwise-quantize",
	Short: "Quantize a row-major float32 matrix into the column-major blockwise layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if blockwiseFlags.ld == 0 {
			blockwiseFlags.ld = blockwiseFlags.cols
		}
		if !blockwise.ValidBlockSize(blockwiseFlags.blockSize) {
			return fmt.Errorf("invalid block size %d", blockwiseFlags.blockSize)
		}

		src, err := readFloat32File(blockwiseFlags.input, blockwiseFlags.rows*blockwiseFlags.ld)
		if err != nil {
			return err
		}

		dataBytes, nScales, zpBytes := blockwise.BufferSizes(blockwiseFlags.blockSize, blockwiseFlags.columnwise, blockwiseFlags.asymmetric, blockwiseFlags.rows, blockwiseFlags.cols)
		dst := make([]byte, dataBytes)
		scales := make([]float32, nScales)
		var zp []byte
		if blockwiseFlags.asymmetric {
			zp = make([]byte, zpBytes)
		}

		pool := workerpool.New(runtime.NumCPU())
		defer pool.Close()
		blockwise.MlasQuantizeBlockwise(pool, dst, scales, zp, src, blockwiseFlags.blockSize, blockwiseFlags.columnwise, blockwiseFlags.rows, blockwiseFlags.cols, blockwiseFlags.ld)

		if err := writeBytesFile(blockwiseFlags.outData, dst); err != nil {
			return err
		}
		if err := writeFloat32File(blockwiseFlags.outScales, scales); err != nil {
			return err
		}
		if blockwiseFlags.asymmetric {
			return writeBytesFile(blockwiseFlags.outZP, zp)
		}
		return nil
	},
}

var blockwiseDequantizeCmd = &cobra.Command{
	Use:   "blockwise-dequantize",
	Short: "Dequantize a blockwise-layout buffer to a dense column-major float32 matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !blockwise.ValidBlockSize(blockwiseFlags.blockSize) {
			return fmt.Errorf("invalid block size %d", blockwiseFlags.blockSize)
		}

		dataBytes, nScales, zpBytes := blockwise.BufferSizes(blockwiseFlags.blockSize, blockwiseFlags.columnwise, blockwiseFlags.asymmetric, blockwiseFlags.rows, blockwiseFlags.cols)
		dst, err := readBytesFile(blockwiseFlags.input, dataBytes)
		if err != nil {
			return err
		}
		scales, err := readFloat32File(blockwiseFlags.outScales, nScales)
		if err != nil {
			return err
		}
		var zp []byte
		if blockwiseFlags.asymmetric {
			zp, err = readBytesFile(blockwiseFlags.outZP, zpBytes)
			if err != nil {
				return err
			}
		}

		out := make([]float32, blockwiseFlags.rows*blockwiseFlags.cols)
		pool := workerpool.New(runtime.NumCPU())
		defer pool.Close()
		blockwise.MlasDequantizeBlockwise(pool, out, dst, scales, zp, blockwiseFlags.blockSize, blockwiseFlags.columnwise, blockwiseFlags.rows, blockwiseFlags.cols)

		return writeFloat32File(blockwiseFlags.outData, out)
	},
}

func init() {
	for _, c := range []*cobra.Command{blockwiseQuantizeCmd, blockwiseDequantizeCmd} {
		c.Flags().IntVar(&blockwiseFlags.blockSize, "block-size", 32, "block size: 16, 32, 64, 128, or 256")
		c.Flags().BoolVar(&blockwiseFlags.columnwise, "columnwise", true, "block axis: columnwise or rowwise")
		c.Flags().BoolVar(&blockwiseFlags.asymmetric, "asymmetric", false, "store per-block zero points")
		c.Flags().IntVar(&blockwiseFlags.rows, "rows", 0, "source row count")
		c.Flags().IntVar(&blockwiseFlags.cols, "cols", 0, "source column count")
		c.Flags().IntVar(&blockwiseFlags.ld, "ld", 0, "source leading dimension (defaults to cols)")
		c.Flags().StringVar(&blockwiseFlags.input, "in", "", "input file (source matrix for quantize, packed data for dequantize)")
		c.Flags().StringVar(&blockwiseFlags.outData, "out-data", "", "output file for the packed payload (quantize) or dense result (dequantize)")
		c.Flags().StringVar(&blockwiseFlags.outScales, "scales", "", "scales file (written by quantize, read by dequantize)")
		c.Flags().StringVar(&blockwiseFlags.outZP, "zero-points", "", "zero-points file, required with --asymmetric")
		c.MarkFlagRequired("rows")
		c.MarkFlagRequired("cols")
		c.MarkFlagRequired("in")
		c.MarkFlagRequired("out-data")
		c.MarkFlagRequired("scales")
	}
}
