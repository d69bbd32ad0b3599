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

package sequencenumber

import (
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Generator 生成订单号: 毫秒时间戳 + 用户ID后四位 + shortuuid 截断补齐
type Generator struct {
	nowMs func() int64
	uuid  func() string
}

func NewGenerator() *Generator {
	return &Generator{
		nowMs: func() int64 { return time.Now().UnixMilli() },
		uuid:  func() string { return shortuuid.New() },
	}
}

// Generate 生成 32 位长度的序列号
func (s *Generator) Generate(uid int64) (string, error) {
	lastFour := fmt.Sprintf("%04d", uid%10000)
	return fmt.Sprintf("%d%s%s", s.nowMs(), lastFour, s.uuid())[:32], nil
}
