package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveChannel(t *testing.T) {
	testCases := []struct {
		name        string
		typ         Type
		wantChannel Channel
	}{
		{
			name:        "银行卡归到credit_card",
			typ:         TypeCard,
			wantChannel: ChannelCreditCard,
		},
		{
			name:        "钱包归到credit_card",
			typ:         TypeWallet,
			wantChannel: ChannelCreditCard,
		},
		{
			name:        "银行转账",
			typ:         TypeBank,
			wantChannel: ChannelBankTransfer,
		},
		{
			name:        "小写也能识别",
			typ:         Type("wallet"),
			wantChannel: ChannelCreditCard,
		},
		{
			name:        "未知类型按货到付款",
			typ:         Type("CASH"),
			wantChannel: ChannelCOD,
		},
		{
			name:        "空类型按货到付款",
			typ:         Type(""),
			wantChannel: ChannelCOD,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantChannel, ResolveChannel(tc.typ))
		})
	}
}
