package model

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username" json:"username"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`

	//bcryptハッシュ。レスポンスには出さない
	PasswordHash string `gorm:"column:password_hash;not null;default:''" json:"-"`

	PhoneNumber    string      `gorm:"type:varchar(30)" json:"phone_number"`
	ProfileImage   string      `gorm:"type:text" json:"profile_image"`
	ProfilePicture *Attachment `gorm:"type:jsonb;serializer:json" json:"profile_picture"`

	//住所は配列の添字で扱う
	Addresses []Address `gorm:"type:jsonb;serializer:json" json:"addresses"`

	WishlistIDs        pq.StringArray `gorm:"column:wishlist_ids;type:text[]" json:"wishlist_ids"`
	FollowingSellerIDs pq.StringArray `gorm:"column:following_seller_ids;type:text[]" json:"following_seller_ids"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
