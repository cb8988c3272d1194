package middleware

import "testing"

func TestRedactQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "ids=1,2,3", "ids=1,2,3"},
		{"secret", "token=abc&page=2", "token=[REDACTED]&page=2"},
		{"secret case", "API_KEY=x", "API_KEY=[REDACTED]"},
		{"email", "q=a.b%2Btag@example.com", "q=[REDACTED:email]"},
		{"uuid before phone", "id=123e4567-e89b-12d3-a456-426614174000", "id=[REDACTED:id]"},
		{"phone", "p=212-555-1212", "p=[REDACTED:phone]"},
		{"bare key", "debug", "debug"},
		{"unparseable", "x=%zz&mail=a@b.io", "x=%zz&mail=[REDACTED:email]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactQuery(tt.in); got != tt.want {
				t.Fatalf("RedactQuery(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
