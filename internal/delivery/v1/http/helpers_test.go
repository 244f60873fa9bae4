package http

import (
	"testing"

	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "2", want: "2"},
		{name: "fraction", in: " 1.5 ", want: "1.5"},
		{name: "below minimum is parsed", in: "0.05", want: "0.05"},
		{name: "upper bound", in: "1000000", want: "1000000"},
		{name: "upper bound with exponent", in: "1e6", want: "1000000"},
		{name: "six fraction digits", in: "0.000001", want: "0.000001"},
		{name: "empty", in: "  ", wantErr: true},
		{name: "not a number", in: "abc", wantErr: true},
		{name: "above upper bound", in: "1000000.01", wantErr: true},
		{name: "huge exponent", in: "1e900000000", wantErr: true},
		{name: "tiny exponent", in: "1e-900000000", wantErr: true},
		{name: "too many fraction digits", in: "0.0000001", wantErr: true},
		{name: "too long", in: "1.00000000000000000000000000000000001", wantErr: true},
		{name: "large negative", in: "-1e9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDecimal(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrInvalidNumber)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
