package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

func (l *Platform) Scan(value interface{}) error {
	*l = Platform(value.(string))
	return nil
}

func (l Platform) Value() string {
	return string(l)
}

func ValidatePlatform(fl validator.FieldLevel) bool {
	return ValidatePlatformRaw(fl.Field().String())
}

func ValidatePlatformRaw(value string) bool {
	matched, _ := regexp.MatchString("^(ios|android|web)$", value)
	return matched
}

func ScanPlatform(value string) Platform {
	return Platform(value)
}

type UserAccount struct {
	JsonModel
	Name   string `json:"name"`
	Email  string `json:"email" gorm:"unique"`
	Banned bool   `gorm:"default:false" json:"-"`
	LastIp string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status   string   `json:"-"`
	GoogleID string   `json:"-"`
	Platform Platform `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`

	ReceiveNotifications bool    `json:"receive_notifications"`
	AvatarURL            *string `json:"avatar_url"`

	ConfirmedDeleteDate *time.Time `json:"-"`
}

type UserPushToken struct {
	JsonModel
	UserAccountID uint
	UserAccount   UserAccount `json:"user_account"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Token         string      `json:"token"`
	Active        bool        `gorm:"default:false" json:"-"`
}

type UserPushIn struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,platform"`
}

type UserInfoOut struct {
	Id        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	AvatarUrl *string `json:"avatar_url"`
}
