package marketdata

import (
	"fmt"
	"testing"

	"market-pulse/internal/domain"
)

func TestPremiumTone(t *testing.T) {
	tests := []struct {
		premium float64
		want    string
	}{
		{premium: 0.51, want: "trading rich"},
		{premium: 0.5, want: "flat"},
		{premium: 0, want: "flat"},
		{premium: -0.5, want: "flat"},
		{premium: -0.51, want: "trading cheap"},
	}
	for _, tt := range tests {
		if got := PremiumTone(tt.premium); got != tt.want {
			t.Fatalf("PremiumTone(%v) = %q, want %q", tt.premium, got, tt.want)
		}
	}
}

func TestPremiumLine(t *testing.T) {
	fund := domain.Fund{Code: "513500", Name: "博时标普500"}
	tests := []struct {
		name string
		in   domain.ETFPremium
		want string
	}{
		{
			name: "positive",
			in:   domain.ETFPremium{Fund: fund, Premium: domain.Float(1.234)},
			want: "博时标普500 (513500): +1.23% (trading rich)",
		},
		{
			name: "negative",
			in:   domain.ETFPremium{Fund: fund, Premium: domain.Float(-0.87)},
			want: "博时标普500 (513500): -0.87% (trading cheap)",
		},
		{
			name: "not found",
			in:   domain.ETFPremium{Fund: fund, Err: fmt.Errorf("no cell: %w", domain.ErrParse)},
			want: "博时标普500 (513500): premium not found",
		},
		{
			name: "network",
			in:   domain.ETFPremium{Fund: fund, Err: domain.ErrNetwork},
			want: "博时标普500 (513500): fetch failed",
		},
		{
			name: "unnamed",
			in:   domain.ETFPremium{Fund: domain.Fund{Code: "000001"}, Premium: domain.Float(0)},
			want: "000001 (000001): +0.00% (flat)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PremiumLine(tt.in); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
