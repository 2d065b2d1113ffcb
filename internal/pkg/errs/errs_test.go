package errs_test

import (
	"fmt"
	"testing"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{name: "nil", err: nil, want: errs.KindUnknown},
		{name: "plain error", err: fmt.Errorf("boom"), want: errs.KindUnknown},
		{name: "not found", err: errs.Newf(errs.KindNotFound, "item %d", 7), want: errs.KindNotFound},
		{name: "not owner", err: errs.Newf(errs.KindNotOwner, "caller %q", "bob"), want: errs.KindNotOwner},
		{name: "invalid discount", err: errs.Newf(errs.KindInvalidDiscount, "percent %d", 101), want: errs.KindInvalidDiscount},
		{name: "payment failed", err: errs.Newf(errs.KindPaymentFailed, "declined"), want: errs.KindPaymentFailed},
		{name: "invalid listing", err: errs.Newf(errs.KindInvalidListing, "empty title"), want: errs.KindInvalidListing},
		{name: "wrapped keeps kind", err: errs.Wrap(errs.Newf(errs.KindNotOwner, "x"), "discount"), want: errs.KindNotOwner},
		{name: "fmt wrapped keeps kind", err: fmt.Errorf("purchase: %w", errs.Newf(errs.KindPaymentFailed, "x")), want: errs.KindPaymentFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.KindOf(tc.err))
		})
	}
}

func TestNewfMarksSentinel(t *testing.T) {
	err := errs.Newf(errs.KindNotFound, "item %d not found", 999)
	require.Error(t, err)

	assert.True(t, errs.Is(err, errs.ErrNotFound))
	assert.False(t, errs.Is(err, errs.ErrNotOwner))
	assert.Equal(t, "item 999 not found", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", errs.KindNotFound.String())
	assert.Equal(t, "not_owner", errs.KindNotOwner.String())
	assert.Equal(t, "invalid_discount", errs.KindInvalidDiscount.String())
	assert.Equal(t, "payment_failed", errs.KindPaymentFailed.String())
	assert.Equal(t, "invalid_listing", errs.KindInvalidListing.String())
	assert.Equal(t, "unknown", errs.Kind(200).String())
	assert.Nil(t, errs.KindUnknown.Sentinel())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "noop"))
	assert.Equal(t, errs.ErrNotFound, errs.Mark(nil, errs.ErrNotFound))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "boom")
}

func TestKindOfMultipleMarksIsStable(t *testing.T) {
	err := errs.Newf(errs.KindPaymentFailed, "transfer declined")
	err = errs.Mark(err, errs.ErrNotOwner)
	err = errs.Mark(err, errs.ErrInvalidListing)

	for range 50 {
		require.Equal(t, errs.KindNotOwner, errs.KindOf(err))
	}
}
