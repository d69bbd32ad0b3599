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

package ioc

import (
	"github.com/ecodeclub/emall/internal/payment/internal/service/momo"
	"github.com/gotomicro/ego/core/econf"
)

func InitMomoConfig() momo.Config {
	var cfg momo.Config
	err := econf.UnmarshalKey("momo", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitMomoService(cfg momo.Config) momo.Service {
	svc, err := momo.NewService(cfg, nil)
	if err != nil {
		panic(err)
	}
	return svc
}
