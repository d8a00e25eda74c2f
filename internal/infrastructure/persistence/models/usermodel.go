package models

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/shared/constants"
)

// UserModel is the persistence model of application users.
type UserModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Username  string `gorm:"uniqueIndex;not null;size:100"`
	Password  string `gorm:"not null;size:255"`
	Email     string `gorm:"not null;size:255"`
	Phone     string `gorm:"not null;size:50"`
	Role      string `gorm:"not null;size:20;default:User;index"`
	Status    string `gorm:"not null;size:20;default:Active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
