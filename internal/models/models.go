package models

// User is a registered account. Role gates catalog management:
// "admin" and "staff" may create, modify and delete products.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Name         string `gorm:"not null"                 json:"name"`
	Role         string `json:"role"`
}

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;not null"     json:"name"`
	Img         string `json:"img"`
	Description string `json:"description"`
	Price       int    `gorm:"not null"                 json:"price"`
	Quantity    int    `json:"quantity"`
}

// Session is the server-side record behind the opaque login cookie.
// Only the sha256 hex of the cookie token is stored.
type Session struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	TokenHash string `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}
