package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
)

// StaffNotifier отправляет уведомления персонала в Telegram-чат регистратуры.
// Nil-получатель безопасен: если уведомления выключены, все методы - no-op.
type StaffNotifier struct {
	bot    *bot.Bot
	chatID string
	logger *zap.Logger
}

// NewStaffNotifier создаёт нотификатор для чата персонала
func NewStaffNotifier(token, chatID string, logger *zap.Logger) (*StaffNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &StaffNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// ReceptionCreated уведомляет персонал о новой записи на приём.
// Ошибка отправки логируется и не влияет на результат записи.
func (n *StaffNotifier) ReceptionCreated(ctx context.Context, reception *model.Reception, doctor *model.Doctor) {
	if n == nil {
		return
	}

	text := fmt.Sprintf(
		"🗓 Новая запись на приём\n\nВрач: <b>%s</b>\nДата: <b>%s</b>\nВремя: <b>%s</b>\nПациент: %s",
		doctor.FullName(),
		reception.DateString(),
		reception.VerboseTime(),
		reception.PatientName,
	)

	n.send(ctx, text)
}

// DailyDigest отправляет персоналу список записей на указанную дату
func (n *StaffNotifier) DailyDigest(ctx context.Context, date time.Time, receptions []*model.Reception) {
	if n == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Записи на %s\n", date.Format(model.DateLayout))

	if len(receptions) == 0 {
		sb.WriteString("\nЗаписей нет.")
	}

	for _, r := range receptions {
		doctorName := fmt.Sprintf("врач #%d", r.DoctorID)
		if r.Doctor != nil {
			doctorName = r.Doctor.FullName()
		}
		fmt.Fprintf(&sb, "\n%s — %s, пациент %s", r.VerboseTime(), doctorName, r.PatientName)
	}

	n.send(ctx, sb.String())
}

func (n *StaffNotifier) send(ctx context.Context, text string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		n.logger.Error("Failed to send staff notification", zap.Error(err))
	}
}
