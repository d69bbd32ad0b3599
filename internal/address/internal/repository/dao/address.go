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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrAddressNotFound = gorm.ErrRecordNotFound

type AddressDAO interface {
	FindByUID(ctx context.Context, uid int64) ([]Address, error)
	FindByIDAndUID(ctx context.Context, id, uid int64) (Address, error)
	Create(ctx context.Context, a Address) (int64, error)
	Update(ctx context.Context, a Address) error
	Delete(ctx context.Context, id int64) error
	// SetDefault 先清掉该用户其余地址的默认位, 再置位, 一个事务内完成
	SetDefault(ctx context.Context, id, uid int64) error
}

type AddressGORMDAO struct {
	db *egorm.Component
}

func NewAddressGORMDAO(db *egorm.Component) AddressDAO {
	return &AddressGORMDAO{db: db}
}

func (d *AddressGORMDAO) FindByUID(ctx context.Context, uid int64) ([]Address, error) {
	var res []Address
	err := d.db.WithContext(ctx).Where("uid = ?", uid).
		Order("is_default DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (d *AddressGORMDAO) FindByIDAndUID(ctx context.Context, id, uid int64) (Address, error) {
	var res Address
	err := d.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&res).Error
	return res, err
}

func (d *AddressGORMDAO) Create(ctx context.Context, a Address) (int64, error) {
	now := time.Now().UnixMilli()
	a.Ctime, a.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if a.IsDefault {
			if err := tx.Model(&Address{}).Where("uid = ?", a.UID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&a).Error
	})
	return a.Id, err
}

func (d *AddressGORMDAO) Update(ctx context.Context, a Address) error {
	return d.db.WithContext(ctx).Model(&Address{}).
		Where("id = ? AND uid = ?", a.Id, a.UID).
		Updates(map[string]any{
			"full_name":    a.FullName,
			"phone":        a.Phone,
			"address_line": a.AddressLine,
			"utime":        time.Now().UnixMilli(),
		}).Error
}

func (d *AddressGORMDAO) Delete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&Address{}, id).Error
}

func (d *AddressGORMDAO) SetDefault(ctx context.Context, id, uid int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.Model(&Address{}).Where("uid = ?", uid).
			Updates(map[string]any{"is_default": false, "utime": now}).Error; err != nil {
			return err
		}
		return tx.Model(&Address{}).Where("id = ?", id).
			Updates(map[string]any{"is_default": true, "utime": now}).Error
	})
}

type Address struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:地址自增ID"`
	UID         int64  `gorm:"column:uid;not null;index:idx_uid;comment:用户ID"`
	FullName    string `gorm:"type:varchar(255);not null;comment:收件人姓名"`
	Phone       string `gorm:"type:varchar(32);not null;comment:收件人电话"`
	AddressLine string `gorm:"type:varchar(512);not null;comment:详细地址"`
	IsDefault   bool   `gorm:"not null;default:false;comment:是否默认地址"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Address{})
}
