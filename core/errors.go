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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidChatTurn indicates a ChatTurn failed validation.
	ErrInvalidChatTurn = errors.New("invalid chat turn")

	// ErrEmptyDocumentID indicates the DocumentID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyMessage indicates the Message field is empty.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidCategory indicates a category outside the fixed taxonomy.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrEmptyQuery indicates a blank search or chat input. It is rejected
	// synchronously as a client error and never reaches the ranker.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrMalformedRecord indicates an unexpected record shape mid-normalization.
	ErrMalformedRecord = errors.New("malformed record")
)
