package main

import (
	"fmt"
	"strings"

	"trails/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxButtons ограничивает клавиатуру списка троп.
const maxButtons = 20

// trailList строит сообщение со списком троп: по кнопке на тропу, по одной в ряд.
func trailList(chatID int64, trails []model.Trail) tgbotapi.MessageConfig {
	if len(trails) == 0 {
		return tgbotapi.NewMessage(chatID, "Троп пока нет.")
	}
	shown := trails
	if len(shown) > maxButtons {
		shown = shown[:maxButtons]
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, len(shown))
	for i, t := range shown {
		title := t.Title
		if r := []rune(title); len(r) > 30 {
			title = string(r[:30]) + "..."
		}
		rows[i] = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("TRAIL_%d", t.ID)),
		)
	}
	text := fmt.Sprintf("Найдено: %d", len(trails))
	if len(trails) > len(shown) {
		text += fmt.Sprintf(" (показаны первые %d, остальные: /trail <id>)", len(shown))
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return msg
}

// formatTrail возвращает описание тропы в Markdown. loc может быть nil.
func formatTrail(t *model.Trail, loc *model.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s* (#%d)\n", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, t.Title), t.ID)
	if t.Description != nil && *t.Description != "" {
		sb.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, *t.Description) + "\n")
	}
	sb.WriteString("\n")
	if t.Length != nil {
		fmt.Fprintf(&sb, "Длина: %.1f км\n", *t.Length)
	}
	if t.Duration != nil {
		fmt.Fprintf(&sb, "Время: %d ч %02d мин\n", *t.Duration/60, *t.Duration%60)
	}
	if t.Elevation != nil {
		fmt.Fprintf(&sb, "Набор высоты: %.0f м\n", *t.Elevation)
	}
	if t.RouteType != nil && *t.RouteType != "" {
		fmt.Fprintf(&sb, "Тип маршрута: %s\n", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, *t.RouteType))
	}
	if loc != nil {
		fmt.Fprintf(&sb, "\n%s\n[Открыть в картах](https://maps.google.com/?q=%f,%f)",
			tgbotapi.EscapeText(tgbotapi.ModeMarkdown, loc.Name), loc.Latitude, loc.Longitude)
	}
	return sb.String()
}
