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
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = gorm.ErrRecordNotFound
	// ErrRedemptionUsed 条件更新一行都没改到, 说明状态早已不是 AVAILABLE
	ErrRedemptionUsed = errors.New("领券记录已被核销或锁定")
	// ErrAlreadyGranted 同一张券对同一个用户只发一次, 撞唯一索引
	ErrAlreadyGranted = errors.New("用户已领取过该优惠券")
)

type VoucherDAO interface {
	// FindByUIDAndCode 按用户和券码联查领券记录与券定义
	FindByUIDAndCode(ctx context.Context, uid int64, code string) (UserVoucher, Voucher, error)
	FindByUID(ctx context.Context, uid int64) ([]UserVoucher, []Voucher, error)
	CreateVoucher(ctx context.Context, v Voucher) (int64, error)
	CreateUserVoucher(ctx context.Context, uv UserVoucher) (int64, error)
	// MarkUsed AVAILABLE -> USED 的条件更新, 防止双花
	MarkUsed(ctx context.Context, id int64) error
}

type VoucherGORMDAO struct {
	db *egorm.Component
}

func NewVoucherGORMDAO(db *egorm.Component) VoucherDAO {
	return &VoucherGORMDAO{db: db}
}

func (d *VoucherGORMDAO) FindByUIDAndCode(ctx context.Context, uid int64, code string) (UserVoucher, Voucher, error) {
	var v Voucher
	err := d.db.WithContext(ctx).Where("code = ?", code).First(&v).Error
	if err != nil {
		return UserVoucher{}, Voucher{}, err
	}
	var uv UserVoucher
	err = d.db.WithContext(ctx).
		Where("uid = ? AND voucher_id = ?", uid, v.Id).
		First(&uv).Error
	if err != nil {
		return UserVoucher{}, Voucher{}, err
	}
	return uv, v, nil
}

func (d *VoucherGORMDAO) FindByUID(ctx context.Context, uid int64) ([]UserVoucher, []Voucher, error) {
	var uvs []UserVoucher
	err := d.db.WithContext(ctx).Where("uid = ?", uid).Find(&uvs).Error
	if err != nil {
		return nil, nil, err
	}
	ids := make([]int64, 0, len(uvs))
	for _, uv := range uvs {
		ids = append(ids, uv.VoucherId)
	}
	var vs []Voucher
	err = d.db.WithContext(ctx).Where("id IN ?", ids).Order("end_at ASC").Find(&vs).Error
	return uvs, vs, err
}

func (d *VoucherGORMDAO) CreateVoucher(ctx context.Context, v Voucher) (int64, error) {
	now := time.Now().UnixMilli()
	v.Ctime, v.Utime = now, now
	err := d.db.WithContext(ctx).Create(&v).Error
	return v.Id, err
}

func (d *VoucherGORMDAO) CreateUserVoucher(ctx context.Context, uv UserVoucher) (int64, error) {
	now := time.Now().UnixMilli()
	uv.Ctime, uv.Utime = now, now
	err := d.db.WithContext(ctx).Create(&uv).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				return 0, ErrAlreadyGranted
			}
		}
		return 0, err
	}
	return uv.Id, nil
}

func (d *VoucherGORMDAO) MarkUsed(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&UserVoucher{}).
		Where("id = ? AND status = ?", id, "AVAILABLE").
		Updates(map[string]any{
			"status":       "USED",
			"used_count":   gorm.Expr("used_count + 1"),
			"last_used_at": now,
			"utime":        now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRedemptionUsed
	}
	return nil
}

type Voucher struct {
	Id   int64  `gorm:"primaryKey;autoIncrement;comment:优惠券自增ID"`
	Code string `gorm:"type:varchar(64);not null;index:idx_code;comment:券码"`
	// DiscountType PERCENT/AMOUNT/FREESHIP
	DiscountType      string `gorm:"type:varchar(16);not null;comment:折扣类型"`
	DiscountValue     int64  `gorm:"not null;comment:折扣值;PERCENT时为百分比"`
	MinOrderAmount    int64  `gorm:"not null;default:0;comment:最低订单金额"`
	MaxDiscountAmount int64  `gorm:"not null;default:0;comment:PERCENT的抵扣上限, 0为不封顶"`
	StartAt           int64  `gorm:"not null;comment:生效时间"`
	EndAt             int64  `gorm:"not null;comment:失效时间"`
	Ctime             int64
	Utime             int64
}

type UserVoucher struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:领券记录自增ID"`
	UID       int64  `gorm:"column:uid;not null;uniqueIndex:uniq_uid_voucher;comment:用户ID"`
	VoucherId int64  `gorm:"not null;uniqueIndex:uniq_uid_voucher;comment:优惠券ID"`
	Status    string `gorm:"type:varchar(16);not null;default:AVAILABLE;comment:AVAILABLE/USED/LOCKED"`
	UsedCount int64  `gorm:"not null;default:0;comment:核销次数"`
	// LastUsedAt 毫秒时间戳, 0 表示从未核销
	LastUsedAt int64 `gorm:"not null;default:0;comment:最近核销时间"`
	Ctime      int64
	Utime      int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Voucher{}, &UserVoucher{})
}
