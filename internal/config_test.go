package internal

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Site.Portal != "portal/portal.json" || cfg.Site.Descriptor != ".well-known/node.json" {
		t.Errorf("site = %+v", cfg.Site)
	}
	if len(cfg.Site.ChecksumTargets) != 7 {
		t.Errorf("checksum targets = %v", cfg.Site.ChecksumTargets)
	}
}

func TestSiteConfig_Required(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.Portal = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty portal path should fail validation")
	}

	cfg = NewDefaultConfig()
	cfg.Site.ChecksumTargets = []string{"portal/portal.json", ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("blank checksum target should fail validation")
	}

	cfg = NewDefaultConfig()
	cfg.Site.Health = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty health path should fail validation")
	}
}

func TestSiteConfig_Layout(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.Page = "about/node.html"
	l := cfg.Site.Layout()
	if l.Page != "about/node.html" || l.Portal != "portal/portal.json" {
		t.Errorf("layout = %+v", l)
	}
}

func TestWatchConfig_DebounceFloor(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Watch.Debounce = time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatal("debounce below 10ms should fail validation")
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "s3cret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg = AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}
