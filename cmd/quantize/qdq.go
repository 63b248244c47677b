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
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-blockquant/hwy/contrib/qdq"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

var qdqFlags struct {
	qbits      int
	blockSize  int
	asymmetric bool
	rows, cols int
	ld         int
	input      string
	outData    string
	outScales  string
	outZP      string
}

var qdqQuantizeCmd = &cobra.Command{
	Use:   "qdq-quantize",
	Short: "Quantize a row-major float32 matrix into the QDQ row-packed layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if qdqFlags.ld == 0 {
			qdqFlags.ld = qdqFlags.cols
		}

		dataBytes, nScales, zpBytes, err := qdq.BufferSizes(qdqFlags.qbits, qdqFlags.blockSize, qdqFlags.rows, qdqFlags.cols, qdqFlags.asymmetric)
		if err != nil {
			return err
		}

		src, err := readFloat32File(qdqFlags.input, qdqFlags.rows*qdqFlags.ld)
		if err != nil {
			return err
		}

		dst := make([]byte, dataBytes)
		scales := make([]float32, nScales)
		var zp []byte
		if qdqFlags.asymmetric {
			zp = make([]byte, zpBytes)
		}

		pool := workerpool.New(runtime.NumCPU())
		defer pool.Close()
		if err := qdq.QuantizeColumnWise(pool, dst, scales, zp, src, qdqFlags.rows, qdqFlags.cols, qdqFlags.blockSize, qdqFlags.qbits, qdqFlags.ld); err != nil {
			return err
		}

		if err := writeBytesFile(qdqFlags.outData, dst); err != nil {
			return err
		}
		if err := writeFloat32File(qdqFlags.outScales, scales); err != nil {
			return err
		}
		if qdqFlags.asymmetric {
			return writeBytesFile(qdqFlags.outZP, zp)
		}
		return nil
	},
}

var qdqDequantizeCmd = &cobra.Command{
	Use:   "qdq-dequantize",
	Short: "Dequantize a QDQ-layout buffer to a dense row-major float32 matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataBytes, nScales, zpBytes, err := qdq.BufferSizes(qdqFlags.qbits, qdqFlags.blockSize, qdqFlags.rows, qdqFlags.cols, qdqFlags.asymmetric)
		if err != nil {
			return err
		}

		src, err := readBytesFile(qdqFlags.input, dataBytes)
		if err != nil {
			return err
		}
		scales, err := readFloat32File(qdqFlags.outScales, nScales)
		if err != nil {
			return err
		}
		var zp []byte
		if qdqFlags.asymmetric {
			zp, err = readBytesFile(qdqFlags.outZP, zpBytes)
			if err != nil {
				return err
			}
		}

		out := make([]float32, qdqFlags.rows*qdqFlags.cols)
		pool := workerpool.New(runtime.NumCPU())
		defer pool.Close()
		if err := qdq.DequantizeColumnWise(pool, out, src, scales, zp, qdqFlags.rows, qdqFlags.cols, qdqFlags.blockSize, qdqFlags.qbits); err != nil {
			return err
		}

		return writeFloat32File(qdqFlags.outData, out)
	},
}

func init() {
	for _, c := range []*cobra.Command{qdqQuantizeCmd, qdqDequantizeCmd} {
		c.Flags().IntVar(&qdqFlags.qbits, "qbits", 4, "bit width: 2 or 4")
		c.Flags().IntVar(&qdqFlags.blockSize, "block-size", 32, "quantization block size along rows")
		c.Flags().BoolVar(&qdqFlags.asymmetric, "asymmetric", false, "store per-block zero points")
		c.Flags().IntVar(&qdqFlags.rows, "rows", 0, "source row count")
		c.Flags().IntVar(&qdqFlags.cols, "cols", 0, "source column count (must be a multiple of pack_count)")
		c.Flags().IntVar(&qdqFlags.ld, "ld", 0, "source leading dimension (defaults to cols)")
		c.Flags().StringVar(&qdqFlags.input, "in", "", "input file (source matrix for quantize, packed data for dequantize)")
		c.Flags().StringVar(&qdqFlags.outData, "out-data", "", "output file for the packed payload (quantize) or dense result (dequantize)")
		c.Flags().StringVar(&qdqFlags.outScales, "scales", "", "scales file (written by quantize, read by dequantize)")
		c.Flags().StringVar(&qdqFlags.outZP, "zero-points", "", "zero-points file, required with --asymmetric")
		c.MarkFlagRequired("rows")
		c.MarkFlagRequired("cols")
		c.MarkFlagRequired("in")
		c.MarkFlagRequired("out-data")
		c.MarkFlagRequired("scales")
	}
}
