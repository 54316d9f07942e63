package sns

import "testing"

func TestValidCertURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"standard cert URL", "https://sns.us-west-2.amazonaws.com/SimpleNotificationService-abc123.pem", true},
		{"china partition", "https://sns.cn-north-1.amazonaws.com.cn/SimpleNotificationService-abc123.pem", true},
		{"plain http", "http://sns.us-west-2.amazonaws.com/cert.pem", false},
		{"attacker host", "https://sns.us-west-2.amazonaws.com.evil.example/cert.pem", false},
		{"not an sns host", "https://s3.us-west-2.amazonaws.com/cert.pem", false},
		{"missing pem extension", "https://sns.us-west-2.amazonaws.com/cert.txt", false},
		{"no path at all", "https://sns.us-west-2.amazonaws.com", false},
		{"malformed url", "https://sns.us-west-2.amazonaws.com/%zz.pem", false},
		{"empty string", "", false},
		{"host prefix trick", "https://fakesns.us-west-2.amazonaws.com/cert.pem", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCertURL(tt.url); got != tt.want {
				t.Errorf("ValidCertURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
