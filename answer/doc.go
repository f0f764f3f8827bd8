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


// Package answer composes templated chat answers from ranked documents.
//
// The Composer classifies a question into an intent bucket (zoning,
// business, transportation, or general), renders the bucket's prompt
// template against the best-matching document, and records both sides of
// the exchange in the conversation history. No language model is invoked;
// answers are deterministic functions of the corpus.
package answer
