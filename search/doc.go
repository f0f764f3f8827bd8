// Copyright 2025 Poiesic Systems
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


// Package search ranks civic documents against free-text queries.
//
// The Ranker type scores every stored document passing the query's
// jurisdiction and category filters with a pluggable Strategy:
//   - WeightedStrategy blends title, content, and metadata signals
//   - OverlapStrategy counts whole-word overlaps only
//
// Hits carry both a similarity score in [0, 1] and the human-readable
// reasons the document matched.
package search
