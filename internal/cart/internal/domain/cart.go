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

// Cart 每个用户至多一个购物车, 首次加购时才创建
type Cart struct {
	ID    int64
	UID   int64
	Items []Item
}

type Item struct {
	ID        int64
	ProductID int64
	Size      string
	Quantity  int64
	// 以下字段来自商品目录的实时数据, 不落库
	ProductName string
	UnitPrice   int64
	ImageURL    string
}
