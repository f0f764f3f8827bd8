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


// Package normalize maps source-specific civic records into the canonical
// Document shape.
//
// Each feed has its own Normalizer owning all field-name knowledge for that
// feed: which keys hold the title, how the content block is composed, and
// which auxiliary fields land in metadata. Absent fields fall back to named
// placeholders rather than failing, so a partially populated record still
// yields a usable document. The composed content block is a display and
// keyword-extraction contract: label text and field order must not change.
package normalize
