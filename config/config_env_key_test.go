package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"vkOauth": map[string]any{
			"clientSecret": "",
			"redirectUri":  "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"redis": map[string]any{
			"proofTtl": "5m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "VKOAUTH_CLIENTSECRET", want: "vkOauth.clientSecret"},
		{envKey: "VKOAUTH_REDIRECTURI", want: "vkOauth.redirectUri"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "REDIS_PROOFTTL", want: "redis.proofTtl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
