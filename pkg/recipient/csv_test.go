package recipient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "address column",
			in:   "address,amount\nA,1\nB,2\n",
			want: []string{"A", "B"},
		},
		{
			name: "recipient column",
			in:   "name,recipient\nalice,A\nbob,B\n",
			want: []string{"A", "B"},
		},
		{
			name: "per-row fallback",
			in:   "address,recipient\nA,\n,B\n,\n",
			want: []string{"A", "B"},
		},
		{
			name: "bom and case",
			in:   "\ufeffAddress\n A \nB\n",
			want: []string{"A", "B"},
		},
		{
			name: "ragged rows",
			in:   "x,address\n1\n2,C\n",
			want: []string{"C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseCSV(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Addresses(entries))
		})
	}
}

func TestParseCSV_NoColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("wallet\nA\n"))
	assert.ErrorIs(t, err, ErrNoAddressColumn)

	_, err = ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoAddressColumn)
}

func TestParseCSV_Malformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("address\n\"unterminated\n"))
	assert.Error(t, err)
}
