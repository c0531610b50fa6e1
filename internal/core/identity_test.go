package core

import (
	"strings"
	"testing"
)

func TestNewIdentityKeepsChosenNickname(t *testing.T) {
	id := NewIdentity("  Nova  ")
	if id.Nickname != "Nova" {
		t.Fatalf("expected trimmed nickname, got %q", id.Nickname)
	}
	if !strings.HasPrefix(id.Badge, "Nova-") {
		t.Fatalf("badge should derive from nickname, got %q", id.Badge)
	}
}

func TestNewIdentityGeneratesWhenBlank(t *testing.T) {
	id := NewIdentity("   ")
	if id.Nickname == "" {
		t.Fatal("expected generated nickname")
	}
	if !strings.HasPrefix(id.Badge, id.Nickname+"-") {
		t.Fatalf("badge %q does not match nickname %q", id.Badge, id.Nickname)
	}
}
