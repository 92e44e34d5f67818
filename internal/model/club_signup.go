package model

import "time"

// ClubSignup 会员俱乐部注册事件，按 external_id 去重，只插入不更新
type ClubSignup struct {
	ID             uint64    `gorm:"primaryKey"`
	ExternalID     string    `gorm:"size:64;not null;uniqueIndex:idx_club_external_id" json:"externalId"`
	ClubName       string    `gorm:"size:128" json:"clubName"`
	SignupDate     time.Time `gorm:"type:date;not null;index:idx_clubs_signup_date" json:"signupDate"`
	SalesAssociate string    `gorm:"size:128;not null" json:"salesAssociate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ClubSignup) TableName() string {
	return "clubs"
}
