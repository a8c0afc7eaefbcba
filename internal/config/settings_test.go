package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestSettings_CoverDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	seen := map[string]bool{}
	for _, s := range Settings() {
		if seen[s.Key] {
			t.Errorf("duplicate setting %q", s.Key)
		}
		seen[s.Key] = true
		if !viper.IsSet(s.Key) {
			t.Errorf("setting %q has no registered default", s.Key)
		}
		if got := viper.Get(s.Key); got != s.Default {
			t.Errorf("setting %q default = %v, viper default = %v", s.Key, s.Default, got)
		}
		if s.Kind == KindSelect && len(s.Options) == 0 {
			t.Errorf("select setting %q has no options", s.Key)
		}
	}
}

func TestLookupSetting(t *testing.T) {
	s, ok := LookupSetting("tui.theme")
	if !ok || s.Kind != KindSelect {
		t.Fatalf("LookupSetting(tui.theme) = %+v, %v", s, ok)
	}
	if _, ok := LookupSetting("tui.keys"); ok {
		t.Error("map-valued keys should not be settings")
	}
	if keys := SettingKeys(); keys[0] != "grid.single_click_edit" {
		t.Errorf("SettingKeys()[0] = %q", keys[0])
	}
}

func TestSetting_Parse(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    any
		wantErr string
	}{
		{"grid.row_selection", "true", true, ""},
		{"grid.row_selection", "yes", nil, "expected true or false"},
		{"tui.column_width", "20", 20, ""},
		{"tui.column_width", "wide", nil, "expected integer"},
		{"tui.column_width", "-1", nil, "non-negative"},
		{"tui.theme", "nord", "nord", ""},
		{"tui.theme", "solarized", nil, "Valid options"},
		{"logging.level", "debug", "debug", ""},
		{"templates.base_dir", "~/tpl", "~/tpl", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s, ok := LookupSetting(tt.key)
			if !ok {
				t.Fatalf("unknown setting %q", tt.key)
			}
			got, err := s.Parse(tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Parse() error = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %v (%T), want %v", got, got, tt.want)
			}
		})
	}
}
