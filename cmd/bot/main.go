package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"trails/internal/app"
	"trails/internal/config"
	"trails/internal/logging"
	"trails/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("Ошибка конфигурации: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer a.Close()

	// Инициализация Telegram Bot API
	if cfg.BotToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка инициализации бота: %v", err)
	}
	log.Infof("Запущен бот %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		// --- CallbackQuery (inline buttons) ---
		if cq := update.CallbackQuery; cq != nil {
			bot.Request(tgbotapi.NewCallback(cq.ID, ""))
			if strings.HasPrefix(cq.Data, "TRAIL_") {
				trailID, _ := strconv.Atoi(strings.TrimPrefix(cq.Data, "TRAIL_"))
				send(bot, log, trailDetails(ctx, a, cq.From.ID, trailID))
			}
			continue
		}

		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID

		switch msg.Command() {
		case "start":
			send(bot, log, tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Здравствуйте, %s! /trails - список троп, /trail <id> - описание тропы.", msg.From.FirstName)))

		case "trails":
			trails, err := a.TrailService.ListTrails(ctx)
			if err != nil {
				log.WithError(err).Error("Не удалось получить тропы")
				send(bot, log, tgbotapi.NewMessage(chatID, "Ошибка получения троп."))
				continue
			}
			send(bot, log, trailList(chatID, trails))

		case "trail":
			trailID, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
			if err != nil {
				send(bot, log, tgbotapi.NewMessage(chatID, "Используйте: /trail <ид_тропы>"))
				continue
			}
			send(bot, log, trailDetails(ctx, a, chatID, trailID))
		}
	}
}

// trailDetails готовит карточку тропы: описание, параметры и ссылку на карту локации.
func trailDetails(ctx context.Context, a *app.App, chatID int64, trailID int) tgbotapi.MessageConfig {
	trail, err := a.TrailService.GetTrail(ctx, trailID)
	if errors.Is(err, repository.ErrNotFound) {
		return tgbotapi.NewMessage(chatID, "Тропа не найдена.")
	}
	if err != nil {
		return tgbotapi.NewMessage(chatID, "Ошибка получения тропы.")
	}
	// локация нужна только для карты, ее отсутствие не мешает показать тропу
	loc, _ := a.LocationService.GetLocation(ctx, trail.LocationID)

	msg := tgbotapi.NewMessage(chatID, formatTrail(trail, loc))
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg
}

func send(bot *tgbotapi.BotAPI, log logrus.FieldLogger, c tgbotapi.Chattable) {
	if _, err := bot.Send(c); err != nil {
		log.WithError(err).Warn("Не удалось отправить сообщение")
	}
}
