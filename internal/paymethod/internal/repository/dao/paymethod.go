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

var ErrPaymentMethodNotFound = gorm.ErrRecordNotFound

type PaymentMethodDAO interface {
	FindActiveByUID(ctx context.Context, uid int64) ([]PaymentMethod, error)
	// FindActiveByIDAndUID 结账用: 必须是本人且 ACTIVE 的记录
	FindActiveByIDAndUID(ctx context.Context, id, uid int64) (PaymentMethod, error)
	FindByIDAndUID(ctx context.Context, id, uid int64) (PaymentMethod, error)
	Create(ctx context.Context, pm PaymentMethod) (int64, error)
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, id, uid int64) error
}

type PaymentMethodGORMDAO struct {
	db *egorm.Component
}

func NewPaymentMethodGORMDAO(db *egorm.Component) PaymentMethodDAO {
	return &PaymentMethodGORMDAO{db: db}
}

func (d *PaymentMethodGORMDAO) FindActiveByUID(ctx context.Context, uid int64) ([]PaymentMethod, error) {
	var res []PaymentMethod
	err := d.db.WithContext(ctx).Where("uid = ? AND status = ?", uid, "ACTIVE").
		Order("is_default DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (d *PaymentMethodGORMDAO) FindActiveByIDAndUID(ctx context.Context, id, uid int64) (PaymentMethod, error) {
	var res PaymentMethod
	err := d.db.WithContext(ctx).
		Where("id = ? AND uid = ? AND status = ?", id, uid, "ACTIVE").
		First(&res).Error
	return res, err
}

func (d *PaymentMethodGORMDAO) FindByIDAndUID(ctx context.Context, id, uid int64) (PaymentMethod, error) {
	var res PaymentMethod
	err := d.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&res).Error
	return res, err
}

func (d *PaymentMethodGORMDAO) Create(ctx context.Context, pm PaymentMethod) (int64, error) {
	now := time.Now().UnixMilli()
	pm.Ctime, pm.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if pm.IsDefault {
			if err := tx.Model(&PaymentMethod{}).Where("uid = ?", pm.UID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&pm).Error
	})
	return pm.Id, err
}

func (d *PaymentMethodGORMDAO) Delete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&PaymentMethod{}, id).Error
}

func (d *PaymentMethodGORMDAO) SetDefault(ctx context.Context, id, uid int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.Model(&PaymentMethod{}).Where("uid = ?", uid).
			Updates(map[string]any{"is_default": false, "utime": now}).Error; err != nil {
			return err
		}
		return tx.Model(&PaymentMethod{}).Where("id = ?", id).
			Updates(map[string]any{"is_default": true, "utime": now}).Error
	})
}

type PaymentMethod struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:支付方式自增ID"`
	UID        int64  `gorm:"column:uid;not null;index:idx_uid;comment:用户ID"`
	Type       string `gorm:"type:varchar(32);not null;comment:类型 CARD/WALLET/BANK"`
	Brand      string `gorm:"type:varchar(64);comment:品牌, 例如钱包服务商名"`
	Last4      string `gorm:"type:varchar(8);comment:卡号后四位"`
	HolderName string `gorm:"type:varchar(255);comment:持有人姓名"`
	Token      string `gorm:"type:varchar(255);comment:支付凭证"`
	IsDefault  bool   `gorm:"not null;default:false;comment:是否默认"`
	Status     string `gorm:"type:varchar(32);not null;default:ACTIVE;comment:状态"`
	Ctime      int64
	Utime      int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&PaymentMethod{})
}
