package config

import "testing"

func TestLoadAdminAllowList(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "Boss@shop.com , second@shop.com,,")
	t.Setenv("DB_DRIVER", "")

	cfg := Load()
	if len(cfg.AdminEmails) != 2 {
		t.Fatalf("AdminEmails = %v", cfg.AdminEmails)
	}
	if cfg.DBDriver != "mysql" {
		t.Errorf("default driver = %q", cfg.DBDriver)
	}

	if !cfg.IsAdmin("boss@shop.com") {
		t.Error("lowercased allow-list entry not matched")
	}
	if !cfg.IsAdmin(" BOSS@SHOP.COM ") {
		t.Error("match should ignore case and whitespace")
	}
	if cfg.IsAdmin("staff@shop.com") {
		t.Error("unlisted email reported as admin")
	}
}

func TestIsAdminEmptyList(t *testing.T) {
	var cfg Config
	if cfg.IsAdmin("") || cfg.IsAdmin("anyone@x.com") {
		t.Error("empty allow-list should admit nobody")
	}
}
