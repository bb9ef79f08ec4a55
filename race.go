// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package csp

// RaceEnabled is true when the race detector is active.
// Used by stress tests to scale iteration counts down, since every
// mutex hand-off is instrumented under the detector.
const RaceEnabled = true
