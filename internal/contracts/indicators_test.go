package contracts

import "testing"

func TestIndicators_TrendLabel(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		ind   Indicators
		want  string
	}{
		{
			name:  "uptrend requires full alignment",
			price: Float(110),
			ind:   Indicators{MA20: Float(105), MA50: Float(100), MA200: Float(90)},
			want:  TrendUptrend,
		},
		{
			name:  "momentum above ma50 with ma20 leading",
			price: Float(103),
			ind:   Indicators{MA20: Float(104), MA50: Float(100), MA200: Float(110)},
			want:  TrendMomentum,
		},
		{
			name:  "base above ma200 only",
			price: Float(95),
			ind:   Indicators{MA20: Float(96), MA50: Float(98), MA200: Float(90)},
			want:  TrendBase,
		},
		{
			name:  "weak below everything",
			price: Float(80),
			ind:   Indicators{MA20: Float(96), MA50: Float(98), MA200: Float(90)},
			want:  TrendWeak,
		},
		{
			name:  "missing averages classify weak",
			price: Float(80),
			ind:   Indicators{},
			want:  TrendWeak,
		},
		{
			name:  "nil price classifies weak",
			price: nil,
			ind:   Indicators{MA20: Float(105), MA50: Float(100), MA200: Float(90)},
			want:  TrendWeak,
		},
		{
			name:  "partial averages fall through to base",
			price: Float(110),
			ind:   Indicators{MA200: Float(90)},
			want:  TrendBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ind.TrendLabel(tt.price); got != tt.want {
				t.Errorf("TrendLabel() = %s, want %s", got, tt.want)
			}
		})
	}
}
