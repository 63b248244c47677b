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

// Package workerpool provides a persistent worker pool for amortizing
// goroutine startup cost across many ParallelFor calls, the way callers
// that quantize or dequantize a whole model's worth of matrices do:
// one pool is created once and shared across every tensor.
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, tensor := range tensors {
//	    blockwise.QuantizeBlockwise(pool, dst, scales, zp, tensor, ...)
//	}
//
// Executor is the interface package consumers depend on so that a nil
// pool (or Serial{}) degrades a parallel call to a plain sequential loop
// without a separate code path at the call site.
package workerpool
