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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = gorm.ErrRecordNotFound
	// ErrInsufficientStock 条件扣减一行都没改到, 即剩余库存不够
	ErrInsufficientStock = errors.New("库存不足")
)

type ProductDAO interface {
	FindByID(ctx context.Context, id int64) (Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, offset, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p Product) (int64, error)
	DecrementStock(ctx context.Context, id int64, quantity int64) error
	IncrementStock(ctx context.Context, id int64, quantity int64) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("id = ? AND status = ?", id, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).Where("id IN ? AND status = ?", ids, domain.StatusOnShelf.ToUint8()).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) List(ctx context.Context, offset, limit int) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).Where("status = ?", domain.StatusOnShelf.ToUint8()).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Product{}).Where("status = ?", domain.StatusOnShelf.ToUint8()).Count(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Create(ctx context.Context, p Product) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := d.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

// DecrementStock 库存检查和扣减必须是同一条条件更新语句,
// 这是并发下单时防止超卖的唯一手段, 进程内不加任何锁
func (d *ProductGORMDAO) DecrementStock(ctx context.Context, id int64, quantity int64) error {
	res := d.db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"utime": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (d *ProductGORMDAO) IncrementStock(ctx context.Context, id int64, quantity int64) error {
	return d.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", quantity),
			"utime": time.Now().UnixMilli(),
		}).Error
}

type Product struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	ImageURL    string `gorm:"type:varchar(512);comment:商品主图"`
	Price       int64  `gorm:"not null;comment:单价;单位为越南盾"`
	Stock       int64  `gorm:"not null;default:0;comment:剩余库存"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:2;comment:商品状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{})
}
