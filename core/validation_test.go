package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				DocumentID: "chicago_leg_123",
				Content:    "Some content",
				Category:   CategoryGeneral,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty document id",
			doc: &Document{
				Content:  "Some content",
				Category: CategoryGeneral,
			},
			wantErr: ErrEmptyDocumentID,
		},
		{
			name: "empty content",
			doc: &Document{
				DocumentID: "chicago_leg_123",
				Category:   CategoryGeneral,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "category outside taxonomy",
			doc: &Document{
				DocumentID: "chicago_leg_123",
				Content:    "Some content",
				Category:   Category("made_up"),
			},
			wantErr: ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChatTurn(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		turn    *ChatTurn
		wantErr error
	}{
		{
			name:    "valid user turn",
			turn:    &ChatTurn{Role: RoleUser, Message: "How do I get a permit?", Timestamp: now},
			wantErr: nil,
		},
		{
			name:    "valid ai turn with zero id",
			turn:    &ChatTurn{Id: 0, Role: RoleAI, Message: "Based on...", Timestamp: now},
			wantErr: nil,
		},
		{
			name:    "nil turn",
			turn:    nil,
			wantErr: ErrInvalidChatTurn,
		},
		{
			name:    "empty message",
			turn:    &ChatTurn{Role: RoleUser, Timestamp: now},
			wantErr: ErrEmptyMessage,
		},
		{
			name:    "invalid role",
			turn:    &ChatTurn{Role: Role(99), Message: "hi", Timestamp: now},
			wantErr: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChatTurn(tt.turn)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChatTurn() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChatTurn() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	if err := ValidateRole(RoleUser); err != nil {
		t.Errorf("ValidateRole(RoleUser) = %v", err)
	}
	if err := ValidateRole(RoleAI); err != nil {
		t.Errorf("ValidateRole(RoleAI) = %v", err)
	}
	if err := ValidateRole(Role(0)); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("ValidateRole(0) = %v, want ErrInvalidRole", err)
	}
}
