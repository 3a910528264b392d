// Copyright 2025 Florian Zenker (flo@znkr.io)
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

package listdiff

import "znkr.io/listdiff/internal/config"

// Option configures the behavior of [Compute].
type Option = config.Option

// DetectMoves enables or disables move detection. It's enabled by default.
//
// Without move detection, an item that changed its position is reported as a removal and an
// insertion.
func DetectMoves(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DetectMoves = enabled
		return config.DetectMoves
	}
}
