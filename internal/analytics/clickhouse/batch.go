package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func InsertUserEvents(ctx context.Context, conn clickhouse.Conn, events []UserEvent) error {
	batch, err := conn.PrepareBatch(ctx,
		`INSERT INTO default.user_events (event_type, user_id, wallet, referral_code, ts, raw)`,
	)
	if err != nil {
		return err
	}

	for _, e := range events {
		if err := batch.Append(e.Type, e.UserID, e.Wallet, e.Code, e.Timestamp, e.RawJSON); err != nil {
			return err
		}
	}

	return batch.Send()
}

func InsertClickEvents(ctx context.Context, conn clickhouse.Conn, events []ClickEvent) error {
	batch, err := conn.PrepareBatch(ctx,
		`INSERT INTO default.click_events (event_type, user_id, referral_code, ip, user_agent, referrer, ts, raw)`,
	)
	if err != nil {
		return err
	}

	for _, e := range events {
		if err := batch.Append(e.Type, e.UserID, e.Code, e.IP, e.UserAgent, e.Referrer, e.Timestamp, e.RawJSON); err != nil {
			return err
		}
	}

	return batch.Send()
}
