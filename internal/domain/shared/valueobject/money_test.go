package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain decimal", "12.50", "12.50", false},
		{"comma separator", "12,50", "12.50", false},
		{"integer", "100", "100.00", false},
		{"whitespace", "  7,25 ", "7.25", false},
		{"negative", "-3.10", "-3.10", false},
		{"empty", "", "", true},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a, err := NewMoneyFromString("10.10")
	require.NoError(t, err)
	b, err := NewMoneyFromString("0.20")
	require.NoError(t, err)

	assert.Equal(t, "10.30", a.Add(b).String())
	assert.Equal(t, "9.90", a.Subtract(b).String())
	assert.Equal(t, "20.20", a.Multiply(decimal.NewFromInt(2)).String())

	half, err := a.Divide(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "5.05", half.String())

	_, err = a.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoney_ExactDecimalSum(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, the classic float trap
	a, _ := NewMoneyFromString("0.1")
	b, _ := NewMoneyFromString("0.2")
	c, _ := NewMoneyFromString("0.3")

	assert.True(t, a.Add(b).Equals(c))
	assert.True(t, a.Add(b).Subtract(c).IsZero())
}

func TestMoney_Predicates(t *testing.T) {
	pos := NewMoneyFromFloat(1.5)
	neg := pos.Negate()

	assert.True(t, pos.IsPositive())
	assert.True(t, neg.IsNegative())
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, pos.GreaterThan(neg))
	assert.True(t, neg.LessThan(pos))
	assert.True(t, neg.Abs().Equals(pos))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("149.90")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
