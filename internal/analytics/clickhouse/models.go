package clickhouse

import (
	"time"
)

// UserEvent is one archived signup, as written to ClickHouse.
type UserEvent struct {
	Type      string    `json:"type" ch:"event_type"`
	UserID    int64     `json:"id" ch:"user_id"`
	Wallet    string    `json:"walletAddress" ch:"wallet"`
	Code      string    `json:"referralCode" ch:"referral_code"`
	Timestamp time.Time `json:"createdAt" ch:"ts"`
	RawJSON   string    `json:"-" ch:"raw"`
}

// ClickEvent is one archived click, as written to ClickHouse.
type ClickEvent struct {
	Type      string    `json:"type" ch:"event_type"`
	UserID    int64     `json:"userId" ch:"user_id"`
	Code      string    `json:"referralCode" ch:"referral_code"`
	IP        string    `json:"ip" ch:"ip"`
	UserAgent string    `json:"userAgent" ch:"user_agent"`
	Referrer  string    `json:"referrer" ch:"referrer"`
	Timestamp time.Time `json:"createdAt" ch:"ts"`
	RawJSON   string    `json:"-" ch:"raw"`
}
