package discount_test

import (
	"math"
	"testing"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name    string
		percent int
		wantErr bool
	}{
		{name: "zero", percent: 0},
		{name: "typical", percent: 20},
		{name: "upper bound", percent: 100},
		{name: "just above bound", percent: 101, wantErr: true},
		{name: "far above bound", percent: 150, wantErr: true},
		{name: "negative", percent: -1, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := discount.New(1, tc.percent, "owner_1")
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, errs.KindInvalidDiscount, errs.KindOf(err))
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.percent, d.Percent)
			assert.Equal(t, "owner_1", d.SetBy.String())
		})
	}
}

func TestApply(t *testing.T) {
	d, err := discount.New(1, 20, "owner_1")
	require.NoError(t, err)
	assert.Equal(t, int64(80), d.Apply(100))

	full, err := discount.New(1, 100, "owner_1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), full.Apply(100))

	// 33% of 10 is 3.3; the reduction rounds down.
	odd, err := discount.New(1, 33, "owner_1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), odd.Apply(10))

	var none *discount.Discount
	assert.Equal(t, int64(100), none.Apply(100))
}

func TestApplyLargePrices(t *testing.T) {
	cases := []struct {
		name    string
		percent int
		price   int64
		want    int64
	}{
		{name: "half of a large price", percent: 50, price: 200_000_000_000_000_000, want: 100_000_000_000_000_000},
		{name: "max price no discount", percent: 0, price: math.MaxInt64, want: math.MaxInt64},
		{name: "max price full discount", percent: 100, price: math.MaxInt64, want: 0},
		{name: "max price one percent", percent: 1, price: math.MaxInt64, want: 9131138316486228049},
		{name: "max price ninety nine percent", percent: 99, price: math.MaxInt64, want: 92233720368547759},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := discount.New(1, tc.percent, "owner_1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Apply(tc.price))
		})
	}
}
