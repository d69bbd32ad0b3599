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

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrItemNotFound = gorm.ErrRecordNotFound

type CartDAO interface {
	// GetOrCreateCart 没有就建一个空车
	GetOrCreateCart(ctx context.Context, uid int64) (Cart, error)
	FindItems(ctx context.Context, cartID int64) ([]CartItem, error)
	// UpsertItem 同车内同商品同尺码合并数量
	UpsertItem(ctx context.Context, item CartItem) (int64, error)
	UpdateQuantity(ctx context.Context, cartID, itemID, quantity int64) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	// ClearByUID 清空该用户购物车的所有条目, 没有购物车视为已清空
	ClearByUID(ctx context.Context, uid int64) error
}

type CartGORMDAO struct {
	db *egorm.Component
}

func NewCartGORMDAO(db *egorm.Component) CartDAO {
	return &CartGORMDAO{db: db}
}

func (d *CartGORMDAO) GetOrCreateCart(ctx context.Context, uid int64) (Cart, error) {
	var c Cart
	err := d.db.WithContext(ctx).Where("uid = ?", uid).First(&c).Error
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, err
	}
	now := time.Now().UnixMilli()
	c = Cart{UID: uid, Ctime: now, Utime: now}
	err = d.db.WithContext(ctx).Create(&c).Error
	return c, err
}

func (d *CartGORMDAO) FindItems(ctx context.Context, cartID int64) ([]CartItem, error) {
	var items []CartItem
	err := d.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (d *CartGORMDAO) UpsertItem(ctx context.Context, item CartItem) (int64, error) {
	now := time.Now().UnixMilli()
	var existing CartItem
	err := d.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ?",
			item.CartID, item.ProductId, item.Size).
		First(&existing).Error
	switch {
	case err == nil:
		err = d.db.WithContext(ctx).Model(&CartItem{}).
			Where("id = ?", existing.Id).
			Updates(map[string]any{
				"quantity": gorm.Expr("quantity + ?", item.Quantity),
				"utime":    now,
			}).Error
		return existing.Id, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		item.Ctime, item.Utime = now, now
		err = d.db.WithContext(ctx).Create(&item).Error
		return item.Id, err
	default:
		return 0, err
	}
}

func (d *CartGORMDAO) UpdateQuantity(ctx context.Context, cartID, itemID, quantity int64) error {
	res := d.db.WithContext(ctx).Model(&CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Updates(map[string]any{
			"quantity": quantity,
			"utime":    time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (d *CartGORMDAO) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (d *CartGORMDAO) ClearByUID(ctx context.Context, uid int64) error {
	var c Cart
	err := d.db.WithContext(ctx).Where("uid = ?", uid).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return d.db.WithContext(ctx).Where("cart_id = ?", c.Id).Delete(&CartItem{}).Error
}

type Cart struct {
	Id    int64 `gorm:"primaryKey;autoIncrement;comment:购物车自增ID"`
	UID   int64 `gorm:"column:uid;not null;uniqueIndex:uniq_uid;comment:用户ID"`
	Ctime int64
	Utime int64
}

type CartItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:条目自增ID"`
	CartID    int64  `gorm:"column:cart_id;not null;uniqueIndex:uniq_cart_product_size;comment:购物车ID"`
	ProductId int64  `gorm:"not null;uniqueIndex:uniq_cart_product_size;comment:商品ID"`
	Size      string `gorm:"type:varchar(32);not null;default:'';uniqueIndex:uniq_cart_product_size;comment:尺码"`
	Quantity  int64  `gorm:"not null;comment:数量"`
	Ctime     int64
	Utime     int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Cart{}, &CartItem{})
}
