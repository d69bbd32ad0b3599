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
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

const (
	// Brand 钱包品牌名, 结账时用它和支付方式的 brand 做匹配
	Brand = "MOMO"

	requestType = "captureWallet"
	lang        = "vi"

	defaultBaseURL = "https://test-payment.momo.vn"
	createPath     = "/v2/gateway/api/create"
)

var (
	ErrMissingConfig       = errors.New("缺少 MoMo 网关配置")
	ErrCreatePaymentFailed = errors.New("创建 MoMo 支付失败")
)

// Config 五项凭据缺一不可, BaseURL 缺省指向沙箱环境
type Config struct {
	PartnerCode string `yaml:"partnerCode"`
	AccessKey   string `yaml:"accessKey"`
	SecretKey   string `yaml:"secretKey"`
	RedirectURL string `yaml:"redirectUrl"`
	IPNURL      string `yaml:"ipnUrl"`
	BaseURL     string `yaml:"baseUrl"`
}

type Service interface {
	CreatePayment(ctx context.Context, p domain.CreatePayment) (domain.GatewayResponse, error)
	// VerifyIPNSignature 只报告真假, 不报告差在哪, 上层不能把结果泄露给回调方
	VerifyIPNSignature(n domain.IPNotification) bool
	// DecodeExtraData 从回调携带的 extraData 中恢复内部订单ID
	DecodeExtraData(extraData string) (int64, bool)
}

// NewService 凭据不全直接拒绝启动,
// 不然每一笔请求都会在网关侧验签失败
func NewService(cfg Config, client *http.Client) (Service, error) {
	if cfg.PartnerCode == "" || cfg.AccessKey == "" || cfg.SecretKey == "" ||
		cfg.RedirectURL == "" || cfg.IPNURL == "" {
		return nil, ErrMissingConfig
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &service{
		cfg:    cfg,
		client: client,
		now:    time.Now,
		logger: elog.DefaultLogger,
	}, nil
}

type service struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
	logger *elog.Component
}

type createRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      string `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type createResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
}

func (s *service) CreatePayment(ctx context.Context, p domain.CreatePayment) (domain.GatewayResponse, error) {
	now := s.now().UnixMilli()
	// requestId 和 orderId 都要求每次尝试唯一, 重试不能撞上网关的幂等键
	requestID := fmt.Sprintf("%d-%d", p.OrderID, now)
	gatewayOrderID := fmt.Sprintf("ORDER_%d_%d", p.OrderID, now)
	amount := strconv.FormatInt(p.Amount, 10)
	extraData := encodeExtraData(p.OrderID)

	// 字段顺序是线上契约的一部分, 错一个字节整条签名作废
	raw := "accessKey=" + s.cfg.AccessKey +
		"&amount=" + amount +
		"&extraData=" + extraData +
		"&ipnUrl=" + s.cfg.IPNURL +
		"&orderId=" + gatewayOrderID +
		"&orderInfo=" + p.OrderInfo +
		"&partnerCode=" + s.cfg.PartnerCode +
		"&redirectUrl=" + s.cfg.RedirectURL +
		"&requestId=" + requestID +
		"&requestType=" + requestType

	body, err := json.Marshal(createRequest{
		PartnerCode: s.cfg.PartnerCode,
		AccessKey:   s.cfg.AccessKey,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     gatewayOrderID,
		OrderInfo:   p.OrderInfo,
		RedirectURL: s.cfg.RedirectURL,
		IPNURL:      s.cfg.IPNURL,
		ExtraData:   extraData,
		RequestType: requestType,
		Lang:        lang,
		Signature:   s.sign(raw),
	})
	if err != nil {
		return domain.GatewayResponse{}, fmt.Errorf("序列化失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return domain.GatewayResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("调用 MoMo 建单接口失败",
			elog.FieldErr(err),
			elog.Int64("order_id", p.OrderID))
		return domain.GatewayResponse{}, fmt.Errorf("%w: %w", ErrCreatePaymentFailed, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	var resp createResponse
	if err = json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return domain.GatewayResponse{}, fmt.Errorf("%w: %w", ErrCreatePaymentFailed, err)
	}
	if resp.ResultCode != 0 || resp.PayURL == "" {
		// 失败详情只进日志, 不进返回给客户端的错误
		s.logger.Error("MoMo 建单被拒绝",
			elog.Int("result_code", resp.ResultCode),
			elog.String("message", resp.Message),
			elog.Int64("order_id", p.OrderID))
		return domain.GatewayResponse{}, ErrCreatePaymentFailed
	}
	return domain.GatewayResponse{
		PayURL:         resp.PayURL,
		GatewayOrderID: gatewayOrderID,
		RequestID:      requestID,
	}, nil
}

func (s *service) VerifyIPNSignature(n domain.IPNotification) bool {
	expected := s.sign(s.ipnRawSignature(n))
	return hmac.Equal([]byte(expected), []byte(n.Signature))
}

// ipnRawSignature 回调验签的字段集和建单不同, 顺序同样是契约
func (s *service) ipnRawSignature(n domain.IPNotification) string {
	return "accessKey=" + s.cfg.AccessKey +
		"&amount=" + strconv.FormatInt(n.Amount, 10) +
		"&extraData=" + n.ExtraData +
		"&message=" + n.Message +
		"&orderId=" + n.OrderID +
		"&orderInfo=" + n.OrderInfo +
		"&orderType=" + n.OrderType +
		"&partnerCode=" + n.PartnerCode +
		"&payType=" + n.PayType +
		"&requestId=" + n.RequestID +
		"&responseTime=" + strconv.FormatInt(n.ResponseTime, 10) +
		"&resultCode=" + strconv.Itoa(n.ResultCode) +
		"&transId=" + strconv.FormatInt(n.TransID, 10)
}

func (s *service) DecodeExtraData(extraData string) (int64, bool) {
	if extraData == "" {
		return 0, false
	}
	data, err := base64.StdEncoding.DecodeString(extraData)
	if err != nil {
		return 0, false
	}
	var payload extraPayload
	if err = json.Unmarshal(data, &payload); err != nil || payload.InternalOrderID == 0 {
		return 0, false
	}
	return payload.InternalOrderID, true
}

func (s *service) sign(raw string) string {
	h := hmac.New(sha256.New, []byte(s.cfg.SecretKey))
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

type extraPayload struct {
	InternalOrderID int64 `json:"internalOrderId"`
}

func encodeExtraData(orderID int64) string {
	data, _ := json.Marshal(extraPayload{InternalOrderID: orderID})
	return base64.StdEncoding.EncodeToString(data)
}
