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
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = gorm.ErrRecordNotFound
	// ErrStatusNotCancelable 条件更新没改到行, 订单不在可取消状态
	ErrStatusNotCancelable = errors.New("订单当前状态不可取消")
)

type OrderDAO interface {
	// CreateOrder 订单和行条目在同一个事务里落库,
	// 行条目拿订单生成的主键作外键
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindByUID(ctx context.Context, uid int64, offset, limit int) ([]Order, error)
	CountByUID(ctx context.Context, uid int64) (int64, error)
	FindByIDAndUID(ctx context.Context, id, uid int64) (Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	// CancelOrder 带状态前置条件的条件更新, 终态和已发货的单子改不动
	CancelOrder(ctx context.Context, id, uid int64) error
	// UpdatePaymentStatus 主路径连网关交易号一起写,
	// 扩展列写不进去就降级为只写状态, 对账结论不能丢
	UpdatePaymentStatus(ctx context.Context, id int64, status string, transID int64, message string) error
	// DeleteOrder 补偿用: 库存扣不动时撤掉刚落库的订单
	DeleteOrder(ctx context.Context, id int64) error
}

type OrderGORMDAO struct {
	db     *egorm.Component
	logger *elog.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db, logger: elog.DefaultLogger}
}

func (d *OrderGORMDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	o.Ctime, o.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		return tx.Create(&items).Error
	})
	return o.Id, err
}

func (d *OrderGORMDAO) FindByUID(ctx context.Context, uid int64, offset, limit int) ([]Order, error) {
	var os []Order
	err := d.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&os).Error
	return os, err
}

func (d *OrderGORMDAO) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Order{}).
		Where("uid = ?", uid).Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) FindByIDAndUID(ctx context.Context, id, uid int64) (Order, error) {
	var o Order
	err := d.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&o).Error
	return o, err
}

func (d *OrderGORMDAO) FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var items []OrderItem
	err := d.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (d *OrderGORMDAO) CancelOrder(ctx context.Context, id, uid int64) error {
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND uid = ? AND status IN ?", id, uid,
			[]string{"pending", "confirmed"}).
		Updates(map[string]any{
			"status": "cancelled",
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusNotCancelable
	}
	return nil
}

func (d *OrderGORMDAO) UpdatePaymentStatus(ctx context.Context, id int64, status string, transID int64, message string) error {
	now := time.Now().UnixMilli()
	err := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"momo_trans_id": transID,
			"momo_message":  message,
			"utime":         now,
		}).Error
	if err == nil {
		return nil
	}
	d.logger.Warn("写入网关交易元数据失败, 降级为只更新状态",
		elog.FieldErr(err),
		elog.Int64("order_id", id))
	return d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"utime":  now,
		}).Error
}

func (d *OrderGORMDAO) DeleteOrder(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Order{}).Error
	})
}

type Order struct {
	Id  int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN  string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	UID int64  `gorm:"column:uid;not null;index:idx_uid;comment:买家ID"`
	// AddressSnapshot 下单时刻的收货信息快照
	AddressSnapshot string `gorm:"type:varchar(512);not null;comment:地址快照"`
	PaymentMethodID int64  `gorm:"not null;default:0;comment:支付方式记录ID, 0表示未指定"`
	VoucherID       int64  `gorm:"not null;default:0;comment:优惠券ID, 0表示未使用"`
	SubTotal        int64  `gorm:"not null;comment:商品小计"`
	Discount        int64  `gorm:"not null;default:0;comment:抵扣金额"`
	ShippingFee     int64  `gorm:"not null;default:0;comment:运费"`
	TotalAmount     int64  `gorm:"not null;comment:应付总额"`
	Status          string `gorm:"type:varchar(16);not null;default:pending;index:idx_status;comment:pending/confirmed/shipped/delivered/cancelled"`
	PaymentMethod   string `gorm:"type:varchar(16);not null;default:cod;comment:cod/credit_card/bank_transfer"`
	MomoTransID     int64  `gorm:"not null;default:0;comment:网关交易号"`
	MomoMessage     string `gorm:"type:varchar(256);not null;default:'';comment:网关返回消息"`
	Ctime           int64
	Utime           int64
}

type OrderItem struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:行条目自增ID"`
	OrderID     int64  `gorm:"column:order_id;not null;index:idx_order_id;comment:订单ID"`
	ProductId   int64  `gorm:"not null;comment:商品ID"`
	ProductName string `gorm:"type:varchar(256);not null;comment:下单时刻商品名"`
	Size        string `gorm:"type:varchar(32);not null;default:'';comment:尺码"`
	Quantity    int64  `gorm:"not null;comment:数量"`
	// UnitPrice 下单时刻冻结的单价
	UnitPrice int64 `gorm:"not null;comment:单价"`
	Ctime     int64
	Utime     int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}
