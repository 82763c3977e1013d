package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "The Last Symphony",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "sceneName",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
		errMsg  string
	}{
		{name: "positive", value: 1000, wantErr: false},
		{name: "zero", value: 0, wantErr: true, errMsg: "daily goal must be greater than zero"},
		{name: "negative", value: -10, wantErr: true, errMsg: "got: -10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("dailyGoal", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePositive() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("historyIndex", 0); err != nil {
		t.Errorf("unexpected error for 0: %v", err)
	}
	err := ValidateNonNegative("historyIndex", -1)
	if err == nil {
		t.Fatal("expected error for -1")
	}
	if !contains(err.Error(), "history index must not be negative") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestErrorMatching(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"storage error is unavailable", &StorageError{Op: "set", Key: "k", Err: errors.New("disk full")}, ErrStorageUnavailable, true},
		{"snapshot error is malformed", &SnapshotError{Reason: "not an object"}, ErrMalformedSnapshot, true},
		{"history index is invalid index", &HistoryIndexError{Index: 11, Len: 10}, ErrInvalidHistoryIndex, true},
		{"history index is not found", &HistoryIndexError{Index: 11, Len: 10}, ErrNotFound, true},
		{"scene error is scene not found", &SceneError{SceneID: 4}, ErrSceneNotFound, true},
		{"scene error is not found", &SceneError{SceneID: 4}, ErrNotFound, true},
		{"storage error is not malformed", &StorageError{Op: "get"}, ErrMalformedSnapshot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &StorageError{Op: "set", Key: "novel-writer-data", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected StorageError to unwrap to its cause")
	}
	if !contains(err.Error(), "quota exceeded") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
