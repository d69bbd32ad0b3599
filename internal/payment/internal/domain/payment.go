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

package domain

// PaymentStatus 对账之后写回订单的支付状态
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// CreatePayment 发起一次网关支付的入参
type CreatePayment struct {
	// OrderID 内部订单ID, 不是网关侧的 orderId
	OrderID   int64
	Amount    int64
	OrderInfo string
}

// GatewayResponse 网关建单成功后的回执
type GatewayResponse struct {
	PayURL string
	// GatewayOrderID 形如 ORDER_{id}_{ms}, 网关按它做幂等去重
	GatewayOrderID string
	RequestID      string
}

// IPNotification 网关异步回调的完整字段集,
// 签名覆盖除 Signature 外的全部字段
type IPNotification struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}
