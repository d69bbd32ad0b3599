package web

type ListAddressesResp struct {
	Addresses []Address `json:"addresses,omitempty"`
}

// CreateAddressReq 新增收货地址
type CreateAddressReq struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

type CreateAddressResp struct {
	ID int64 `json:"id"`
}

type UpdateAddressReq struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
}

type DeleteAddressReq struct {
	ID int64 `json:"id"`
}

type SetDefaultAddressReq struct {
	ID int64 `json:"id"`
}

type Address struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	IsDefault   bool   `json:"isDefault"`
}
