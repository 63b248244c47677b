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
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-blockquant/hwy/contrib/q4gemm"
)

var rootCmd = &cobra.Command{
	Use:   "quantize",
	Short: "Pack and unpack weight matrices through the blockwise low-bit layouts",
}

func init() {
	rootCmd.AddCommand(packCmd, unpackCmd)
	rootCmd.AddCommand(blockwiseQuantizeCmd, blockwiseDequantizeCmd)
	rootCmd.AddCommand(qdqQuantizeCmd, qdqDequantizeCmd)
}

// parseQType resolves a --qtype flag value, rejecting anything
// q4gemm doesn't have a descriptor for and naming the valid choices.
func parseQType(s string) (q4gemm.QType, error) {
	names := lo.Map(q4gemm.SupportedQTypes(), func(q q4gemm.QType, _ int) string {
		return q.String()
	})
	for _, q := range q4gemm.SupportedQTypes() {
		if q.String() == s {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown qtype %q, want one of %v", s, names)
}

func readFloat32File(path string, count int) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) != count*4 {
		return nil, fmt.Errorf("%s: expected %d bytes (%d float32 elements), got %d", path, count*4, count, len(raw))
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

func readBytesFile(path string, count int) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) != count {
		return nil, fmt.Errorf("%s: expected %d bytes, got %d", path, count, len(raw))
	}
	return raw, nil
}

func writeBytesFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func writeFloat32File(path string, data []float32) error {
	raw := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	return os.WriteFile(path, raw, 0o644)
}
