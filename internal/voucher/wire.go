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

//go:build wireinject

package voucher

import (
	"sync"

	"github.com/ecodeclub/emall/internal/voucher/internal/repository"
	"github.com/ecodeclub/emall/internal/voucher/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/voucher/internal/service"
	"github.com/ecodeclub/emall/internal/voucher/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	repository.NewVoucherRepository,
	service.NewService,
	web.NewHandler)

func InitModule(db *egorm.Component) *Module {
	wire.Build(ModuleSet, wire.Struct(new(Module), "*"))
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.VoucherDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewVoucherGORMDAO(db)
}
