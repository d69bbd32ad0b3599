package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()
	for _, valid := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled"} {
		st, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, string(st))
	}
	for _, invalid := range []string{"", "paid", "PENDING", "done"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrUnknownStatus, invalid)
	}
}

func TestStatus_Cancelable(t *testing.T) {
	t.Parallel()
	assert.True(t, StatusPending.Cancelable())
	assert.True(t, StatusConfirmed.Cancelable())
	assert.False(t, StatusShipped.Cancelable())
	assert.False(t, StatusDelivered.Cancelable())
	assert.False(t, StatusCancelled.Cancelable())
}

func TestTotal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(100000), Total(100000, 0, 0))
	assert.Equal(t, int64(280000), Total(300000, 20000, 0))
	assert.Equal(t, int64(95000), Total(100000, 10000, 5000))
	// 折扣超过小计时总额钳在零, 不会出现负的应付金额
	assert.Equal(t, int64(0), Total(10000, 20000, 0))
}
