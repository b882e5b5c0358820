package user

import "testing"

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantKeys []string
	}{
		{"valid", "ana@correo.com", "secreta", nil},
		{"empty email", "", "secreta", []string{"email"}},
		{"malformed email", "ana@correo", "secreta", []string{"email"}},
		{"empty password", "ana@correo.com", "", []string{"password"}},
		{"short password", "ana@correo.com", "abc12", []string{"password"}},
		{"both missing", "", "", []string{"email", "password"}},
	}

	for _, tt := range tests {
		errs := ValidateLogin(tt.email, tt.password)
		if len(tt.wantKeys) == 0 {
			if errs != nil {
				t.Errorf("%s: unexpected errors %v", tt.name, errs)
			}
			continue
		}
		if len(errs) != len(tt.wantKeys) {
			t.Errorf("%s: got %d errors %v, want keys %v", tt.name, len(errs), errs, tt.wantKeys)
			continue
		}
		for _, key := range tt.wantKeys {
			if errs[key] == "" {
				t.Errorf("%s: missing error for field %q, got %v", tt.name, key, errs)
			}
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name            string
		displayName     string
		email           string
		password        string
		confirmPassword string
		wantKeys        []string
	}{
		{"valid", "Ana García", "ana@correo.com", "supersegura", "supersegura", nil},
		{"accented name valid", "Iñaki Muñoz", "inaki@correo.com", "supersegura", "supersegura", nil},
		{"empty name", "", "ana@correo.com", "supersegura", "supersegura", []string{"fullName"}},
		{"single letter name", "A", "ana@correo.com", "supersegura", "supersegura", []string{"fullName"}},
		{"name with digits", "Ana123", "ana@correo.com", "supersegura", "supersegura", []string{"fullName"}},
		{"short password", "Ana", "ana@correo.com", "corta12", "corta12", []string{"password"}},
		{"empty confirm", "Ana", "ana@correo.com", "supersegura", "", []string{"confirmPassword"}},
		{"mismatched confirm", "Ana", "ana@correo.com", "supersegura", "otracosa", []string{"confirmPassword"}},
		{"everything wrong", "", "nope", "", "", []string{"fullName", "email", "password", "confirmPassword"}},
	}

	for _, tt := range tests {
		errs := ValidateRegistration(tt.displayName, tt.email, tt.password, tt.confirmPassword)
		if len(tt.wantKeys) == 0 {
			if errs != nil {
				t.Errorf("%s: unexpected errors %v", tt.name, errs)
			}
			continue
		}
		if len(errs) != len(tt.wantKeys) {
			t.Errorf("%s: got %d errors %v, want keys %v", tt.name, len(errs), errs, tt.wantKeys)
			continue
		}
		for _, key := range tt.wantKeys {
			if errs[key] == "" {
				t.Errorf("%s: missing error for field %q, got %v", tt.name, key, errs)
			}
		}
	}
}

func TestValidateDisplayName(t *testing.T) {
	if errs := ValidateDisplayName("Ana García"); errs != nil {
		t.Errorf("valid name rejected: %v", errs)
	}
	if errs := ValidateDisplayName("   "); errs == nil || errs["displayName"] == "" {
		t.Errorf("blank name accepted: %v", errs)
	}
	if errs := ValidateDisplayName("X"); errs == nil || errs["displayName"] == "" {
		t.Errorf("one-letter name accepted: %v", errs)
	}
	if errs := ValidateDisplayName("Ana_García"); errs == nil || errs["displayName"] == "" {
		t.Errorf("name with symbols accepted: %v", errs)
	}
}
