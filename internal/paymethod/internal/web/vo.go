package web

type ListPaymentMethodsResp struct {
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`
}

// CreatePaymentMethodReq 绑定新的支付方式
type CreatePaymentMethodReq struct {
	Type       string `json:"type"`
	Brand      string `json:"brand,omitempty"`
	Last4      string `json:"last4,omitempty"`
	HolderName string `json:"holderName,omitempty"`
	Token      string `json:"token,omitempty"`
	IsDefault  bool   `json:"isDefault,omitempty"`
}

type CreatePaymentMethodResp struct {
	ID int64 `json:"id"`
}

type DeletePaymentMethodReq struct {
	ID int64 `json:"id"`
}

type SetDefaultPaymentMethodReq struct {
	ID int64 `json:"id"`
}

type PaymentMethod struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Brand      string `json:"brand,omitempty"`
	Last4      string `json:"last4,omitempty"`
	HolderName string `json:"holderName,omitempty"`
	IsDefault  bool   `json:"isDefault"`
}
