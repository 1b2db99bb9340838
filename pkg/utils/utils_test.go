package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateToken("user-1", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if !claims.HasRole("admin") || claims.HasRole("gm") {
		t.Errorf("unexpected roles %v", claims.Roles)
	}
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	SetSecret("one")
	token, _ := GenerateToken("user-1", nil, time.Hour)
	SetSecret("two")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected signature error")
	}
}

func TestFileName(t *testing.T) {
	got := FileName("xlsx", "GRN Approvals", "admin", "pending")
	if got != "grn-approvals-admin-pending.xlsx" {
		t.Errorf("FileName() = %q", got)
	}
	if FileName(".xlsx") != "export.xlsx" {
		t.Errorf("empty parts should fall back to export")
	}
}
