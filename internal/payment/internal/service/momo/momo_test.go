// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package momo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		PartnerCode: "PARTNER_TEST",
		AccessKey:   "access-key",
		SecretKey:   "secret-key",
		RedirectURL: "https://shop.example.com/momo/return",
		IPNURL:      "https://shop.example.com/momo/ipn",
	}
}

func TestNewService_MissingConfig(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "缺 partnerCode", mutate: func(cfg *Config) { cfg.PartnerCode = "" }},
		{name: "缺 accessKey", mutate: func(cfg *Config) { cfg.AccessKey = "" }},
		{name: "缺 secretKey", mutate: func(cfg *Config) { cfg.SecretKey = "" }},
		{name: "缺 redirectUrl", mutate: func(cfg *Config) { cfg.RedirectURL = "" }},
		{name: "缺 ipnUrl", mutate: func(cfg *Config) { cfg.IPNURL = "" }},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tc.mutate(&cfg)
			_, err := NewService(cfg, nil)
			assert.ErrorIs(t, err, ErrMissingConfig)
		})
	}
}

func TestService_CreatePayment(t *testing.T) {
	t.Parallel()
	var got createRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, createPath, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(createResponse{
			ResultCode: 0,
			PayURL:     "https://test-payment.momo.vn/pay/abc",
		})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.BaseURL = server.URL
	svcIface, err := NewService(cfg, server.Client())
	require.NoError(t, err)
	svc := svcIface.(*service)
	now := time.UnixMilli(1700000000000)
	svc.now = func() time.Time { return now }

	resp, err := svc.CreatePayment(context.Background(), domain.CreatePayment{
		OrderID:   42,
		Amount:    150000,
		OrderInfo: "Thanh toan don hang #42",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", resp.PayURL)
	assert.Equal(t, fmt.Sprintf("ORDER_42_%d", now.UnixMilli()), resp.GatewayOrderID)
	assert.Equal(t, fmt.Sprintf("42-%d", now.UnixMilli()), resp.RequestID)

	assert.Equal(t, cfg.PartnerCode, got.PartnerCode)
	assert.Equal(t, "150000", got.Amount)
	assert.Equal(t, resp.GatewayOrderID, got.OrderID)
	assert.Equal(t, resp.RequestID, got.RequestID)
	assert.Equal(t, "captureWallet", got.RequestType)
	assert.Equal(t, "vi", got.Lang)

	// 网关拿同样的原始串重算, 必须能对上
	raw := "accessKey=" + cfg.AccessKey +
		"&amount=" + got.Amount +
		"&extraData=" + got.ExtraData +
		"&ipnUrl=" + cfg.IPNURL +
		"&orderId=" + got.OrderID +
		"&orderInfo=" + got.OrderInfo +
		"&partnerCode=" + cfg.PartnerCode +
		"&redirectUrl=" + cfg.RedirectURL +
		"&requestId=" + got.RequestID +
		"&requestType=" + got.RequestType
	assert.Equal(t, svc.sign(raw), got.Signature)

	// extraData 回传后要能解出内部订单ID
	id, ok := svc.DecodeExtraData(got.ExtraData)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestService_CreatePayment_GatewayRejected(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(createResponse{
			ResultCode: 41,
			Message:    "duplicated orderId",
		})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.BaseURL = server.URL
	svc, err := NewService(cfg, server.Client())
	require.NoError(t, err)

	_, err = svc.CreatePayment(context.Background(), domain.CreatePayment{
		OrderID: 42, Amount: 150000, OrderInfo: "x",
	})
	assert.ErrorIs(t, err, ErrCreatePaymentFailed)
	// 网关侧的拒绝详情不能出现在返回的错误里
	assert.NotContains(t, err.Error(), "duplicated orderId")
}

func TestService_CreatePayment_RetriesNeverCollide(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(createResponse{ResultCode: 0, PayURL: "https://pay"})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.BaseURL = server.URL
	svcIface, err := NewService(cfg, server.Client())
	require.NoError(t, err)
	svc := svcIface.(*service)

	ms := int64(1700000000000)
	svc.now = func() time.Time {
		ms++
		return time.UnixMilli(ms)
	}

	first, err := svc.CreatePayment(context.Background(), domain.CreatePayment{OrderID: 7, Amount: 2000, OrderInfo: "x"})
	require.NoError(t, err)
	second, err := svc.CreatePayment(context.Background(), domain.CreatePayment{OrderID: 7, Amount: 2000, OrderInfo: "x"})
	require.NoError(t, err)

	assert.NotEqual(t, first.GatewayOrderID, second.GatewayOrderID)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestService_VerifyIPNSignature(t *testing.T) {
	t.Parallel()
	svcIface, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	svc := svcIface.(*service)

	n := domain.IPNotification{
		PartnerCode:  "PARTNER_TEST",
		OrderID:      "ORDER_42_1700000000000",
		RequestID:    "42-1700000000000",
		Amount:       150000,
		OrderInfo:    "Thanh toan don hang #42",
		OrderType:    "momo_wallet",
		TransID:      987654321,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1700000001000,
		ExtraData:    encodeExtraData(42),
	}
	n.Signature = svc.sign(svc.ipnRawSignature(n))
	assert.True(t, svc.VerifyIPNSignature(n))

	// 改动签名串里任意一个字段, 校验都必须失败
	mutations := []struct {
		name   string
		mutate func(n *domain.IPNotification)
	}{
		{name: "amount", mutate: func(n *domain.IPNotification) { n.Amount = 1 }},
		{name: "extraData", mutate: func(n *domain.IPNotification) { n.ExtraData = encodeExtraData(43) }},
		{name: "message", mutate: func(n *domain.IPNotification) { n.Message = "Failed." }},
		{name: "orderId", mutate: func(n *domain.IPNotification) { n.OrderID = "ORDER_43_1700000000000" }},
		{name: "orderInfo", mutate: func(n *domain.IPNotification) { n.OrderInfo = "Thanh toan don hang #43" }},
		{name: "orderType", mutate: func(n *domain.IPNotification) { n.OrderType = "other_wallet" }},
		{name: "partnerCode", mutate: func(n *domain.IPNotification) { n.PartnerCode = "PARTNER_EVIL" }},
		{name: "payType", mutate: func(n *domain.IPNotification) { n.PayType = "webApp" }},
		{name: "requestId", mutate: func(n *domain.IPNotification) { n.RequestID = "43-1700000000000" }},
		{name: "responseTime", mutate: func(n *domain.IPNotification) { n.ResponseTime = 1700000002000 }},
		{name: "resultCode", mutate: func(n *domain.IPNotification) { n.ResultCode = 9000 }},
		{name: "transId", mutate: func(n *domain.IPNotification) { n.TransID = 111111111 }},
	}
	for _, m := range mutations {
		m := m
		t.Run("篡改 "+m.name, func(t *testing.T) {
			tampered := n
			m.mutate(&tampered)
			assert.False(t, svc.VerifyIPNSignature(tampered))
		})
	}

	forged := n
	forged.Signature = "deadbeef"
	assert.False(t, svc.VerifyIPNSignature(forged))

	// 换一把密钥, 原签名必须失效
	otherCfg := testConfig()
	otherCfg.SecretKey = "another-secret"
	otherIface, err := NewService(otherCfg, nil)
	require.NoError(t, err)
	assert.False(t, otherIface.VerifyIPNSignature(n))
}

func TestService_DecodeExtraData(t *testing.T) {
	t.Parallel()
	svc, err := NewService(testConfig(), nil)
	require.NoError(t, err)

	id, ok := svc.DecodeExtraData(encodeExtraData(42))
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = svc.DecodeExtraData("")
	assert.False(t, ok)

	_, ok = svc.DecodeExtraData("!!!not-base64!!!")
	assert.False(t, ok)

	_, ok = svc.DecodeExtraData("bm90IGpzb24=")
	assert.False(t, ok)
}
