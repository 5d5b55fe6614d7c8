package models

import "time"

// Setting keys used by the print dispatch service.
const (
	SettingFeieyunUser = "feieyun_user"
	SettingFeieyunUkey = "feieyun_ukey"
	SettingFeieyunURL  = "feieyun_url"
)

// Setting is a named configuration value. Cloud print credentials live here
// when they are not provided through the environment.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
