package models

import "time"

// User is one affiliate: a wallet address with its issued referral code.
// The code is assigned once at signup and never changes.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	WalletAddress string    `json:"walletAddress"`
	ReferralCode  string    `json:"referralCode"`
	ReferralLink  string    `json:"referralLink"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ClickEvent is one recorded visit attributed to a referral code.
// Events are append-only: never updated, never deleted.
type ClickEvent struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ReferralCode string    `json:"referralCode"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"userAgent"`
	Referrer     string    `json:"referrer"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DayCount is the number of clicks on one UTC calendar day (YYYY-MM-DD).
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalClicks  int64      `json:"totalClicks"`
	UniqueClicks int64      `json:"uniqueClicks"`
	ClicksByDay  []DayCount `json:"clicksByDay"`
}
