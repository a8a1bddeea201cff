package midds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodie/pkg/midds"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    uint16
		month   uint8
		day     uint8
		wantErr bool
	}{
		{"plain date", 2020, 6, 15, false},
		{"leap day on leap year", 2024, 2, 29, false},
		{"leap day on common year", 2023, 2, 29, true},
		{"century non-leap", 1900, 2, 29, true},
		{"quadricentennial leap", 2000, 2, 29, false},
		{"thirty-first of april", 2020, 4, 31, true},
		{"month zero", 2020, 0, 1, true},
		{"month thirteen", 2020, 13, 1, true},
		{"day zero", 2020, 1, 0, true},
		{"year below range", 999, 1, 1, true},
		{"year at lower bound", 1000, 1, 1, false},
		{"year at upper bound", 9999, 12, 31, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := midds.NewDate(tt.year, tt.month, tt.day)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, midds.HasKind(err, midds.KindOutOfRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, d.Year())
			assert.Equal(t, tt.month, d.Month())
			assert.Equal(t, tt.day, d.Day())
		})
	}
}

func TestDateString(t *testing.T) {
	d := midds.MustDate(2024, 2, 29)
	assert.Equal(t, "2024-02-29", d.String())
}
