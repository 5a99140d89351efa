package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/patchboard/atlas/pkg/errors"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		code    errors.Code
	}{
		{
			name:    "partial keeps defaults",
			content: "[viewport]\nwidth = 1024\n",
			want:    Config{Viewport: Viewport{Width: 1024, Height: 600}, Log: Log{Level: "info"}},
		},
		{
			name: "full",
			content: `[viewport]
width = 320
height = 240

[router]
inbox = "/srv/router/in"
outbox = "/srv/router/out"

[log]
level = "debug"
`,
			want: Config{
				Viewport: Viewport{Width: 320, Height: 240},
				Router:   Router{Inbox: "/srv/router/in", Outbox: "/srv/router/out"},
				Log:      Log{Level: "debug"},
			},
		},
		{name: "malformed", content: "[viewport\nwidth = ", code: errors.ErrCodeInvalidConfig},
		{name: "wrong type", content: "[viewport]\nwidth = \"wide\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "zero height", content: "[viewport]\nheight = 0\n", code: errors.ErrCodeInvalidConfig},
		{name: "bad level", content: "[log]\nlevel = \"loud\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "relative router", content: "[router]\ninbox = \"in\"\n", code: errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(dir)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("Load() err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	want := Config{
		Viewport: Viewport{Width: 640, Height: 480},
		Router:   Router{Inbox: "/r/in"},
		Log:      Log{Level: "warn"},
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	err := Save(t.TempDir(), Config{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Save(zero) err = %v", err)
	}
}
