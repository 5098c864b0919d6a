package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户模型
// 账号的注册/登录由上游身份系统负责，本服务只读取
type UserInfo struct {
	Id        int64          `gorm:"column:id;primaryKey;autoIncrement;comment:用户ID"`
	Nickname  string         `gorm:"column:nickname;type:varchar(30);not null;comment:昵称"`
	Email     string         `gorm:"column:email;type:varchar(100);index;comment:邮箱"`
	Password  string         `gorm:"column:password;type:varchar(80);comment:密码哈希"`
	Status    int8           `gorm:"column:status;not null;default:0;comment:状态，0.正常，1.禁用"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// SetPassword 使用 bcrypt 哈希密码
func (u *UserInfo) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword 校验明文密码
func (u *UserInfo) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
