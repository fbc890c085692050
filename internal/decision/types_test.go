package decision

import "testing"

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("create a component", CurrentChat)
	b := CacheKey("create a component", CurrentChat)
	if a != b {
		t.Fatalf("same inputs produced different keys: %s vs %s", a, b)
	}
}

func TestCacheKeyIgnoresNothingButMode(t *testing.T) {
	base := CacheKey("hello", CurrentChat)
	if CacheKey("hello", CurrentEditor) == base {
		t.Fatal("mode change should change the key")
	}
	if CacheKey("hello!", CurrentChat) == base {
		t.Fatal("message change should change the key")
	}
}

func TestParseContextDefaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		wantMode string
		wantPref float32
	}{
		{"nil-map", nil, CurrentChat, 0.5},
		{"empty-map", map[string]any{}, CurrentChat, 0.5},
		{"editor-mode", map[string]any{"current_mode": "editor"}, CurrentEditor, 0.5},
		{"unknown-mode-ignored", map[string]any{"current_mode": "vim"}, CurrentChat, 0.5},
		{"preference-set", map[string]any{"user_preference": 0.9}, CurrentChat, 0.9},
		{"preference-clamped", map[string]any{"user_preference": 3.0}, CurrentChat, 1.0},
		{"unrecognized-keys-ignored", map[string]any{"theme": "dark"}, CurrentChat, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseContext(tt.raw)
			if got.CurrentMode != tt.wantMode {
				t.Errorf("mode: got %q, want %q", got.CurrentMode, tt.wantMode)
			}
			if got.UserPreference != tt.wantPref {
				t.Errorf("preference: got %v, want %v", got.UserPreference, tt.wantPref)
			}
		})
	}
}
