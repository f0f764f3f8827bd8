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

import (
	"fmt"
	"slices"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - DocumentID must not be empty
//   - Content must not be empty
//   - Category must be one of the fixed taxonomy values
//
// NOT validated (normalizers substitute placeholders instead of failing):
//   - Title, Jurisdiction, Authority (placeholder text is acceptable)
//   - EffectiveDate (may be empty when the source omits it)
//   - Summary, Keywords, ContentHash (attached at ingestion time)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.DocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if err := ValidateCategory(doc.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateChatTurn validates a ChatTurn according to domain rules.
//
// Validation rules:
//   - Message must not be empty
//   - Role must be valid (user or AI)
//
// The ID is not validated; 0 is valid before storage assigns a sequence value.
func ValidateChatTurn(turn *ChatTurn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidChatTurn)
	}

	if turn.Message == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatTurn, ErrEmptyMessage)
	}

	if err := ValidateRole(turn.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChatTurn, err)
	}

	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAI {
		return fmt.Errorf("%w: value %d", ErrInvalidRole, role)
	}
	return nil
}

// ValidateCategory validates that a category belongs to the fixed taxonomy.
func ValidateCategory(category Category) error {
	if !slices.Contains(Categories(), category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}
