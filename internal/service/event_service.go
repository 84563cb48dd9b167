package service

import (
	"context"
	"log/slog"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/mysql"
)

type Sender func(ctx context.Context, ev *model.GroupEvent) error

// EventRelayer 把 outbox 里的 pending 事件行交给 sender 投递。
// 每次写操作后同步调用一轮，不起后台任务。
type EventRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	sender    Sender
}

func NewEventRelayer(repo *mysql.OutboxRepository, sender Sender) *EventRelayer {
	return &EventRelayer{
		repo:      repo,
		batchSize: 20,
		sender:    sender,
	}
}

// Dispatch 投递一批 pending 事件，失败标记 failed 并累加 retry，不向调用方冒泡
func (r *EventRelayer) Dispatch(ctx context.Context) {
	if r == nil || r.sender == nil {
		return
	}
	rows, err := r.repo.ListPending(r.batchSize)
	if err != nil {
		slog.Warn("outbox query failed", "err", err)
		return
	}
	for i := range rows {
		ev := rows[i]
		if err := r.sender(ctx, &ev); err != nil {
			slog.Warn("event send failed", "event", ev.EventType, "group_id", ev.GroupID, "err", err)
			_ = r.repo.MarkFailed(ev.ID)
			continue
		}
		_ = r.repo.MarkSent(ev.ID)
	}
}

// KafkaSender 用事件生产者构造 sender
func KafkaSender(p *pkg.EventProducer) Sender {
	return func(ctx context.Context, ev *model.GroupEvent) error {
		return p.Publish(ctx, ev.GroupID, []byte(ev.Payload))
	}
}
