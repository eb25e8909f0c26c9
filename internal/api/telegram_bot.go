// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Deepthi2006/aquasentry/internal/entities"
	"github.com/Deepthi2006/aquasentry/internal/usecases"
)

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	useCase *usecases.TankUseCase
	// When non-zero, only this chat is answered
	chatID int64
}

// NewTelegramBot creates a new Telegram bot handler. A zero chatID leaves
// the bot open to every chat.
func NewTelegramBot(botToken string, chatID int64, useCase *usecases.TankUseCase) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &TelegramBot{
		bot:     bot,
		useCase: useCase,
		chatID:  chatID,
	}, nil
}

// Start begins listening for and handling Telegram messages
func (t *TelegramBot) Start() {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if t.chatID != 0 && update.Message.Chat.ID != t.chatID {
			log.Printf("Ignoring message from chat %d", update.Message.Chat.ID)
			continue
		}

		// Log incoming messages
		log.Printf("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update)
	}
}

// handleMessage processes a Telegram message update
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	switch {
	case update.Message.IsCommand():
		t.handleCommand(update.Message, &msg)
	default:
		t.handleNonCommand(update.Message, &msg)
	}

	log.Printf("Sending response to user %s", update.Message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	switch message.Command() {
	case "start":
		log.Printf("Handling /start command for user %s", message.From.UserName)
		msg.Text = "Welcome to the AquaSentry bot! Use /tanks to see the list of monitored tanks or /help for more information."

	case "help":
		log.Printf("Handling /help command for user %s", message.From.UserName)
		msg.Text = "Available commands:\n" +
			"/start - Start the bot\n" +
			"/tanks - Show the list of monitored tanks\n" +
			"/tank [id] - Show information for a specific tank\n" +
			"/alerts - Show active alerts\n" +
			"/forecast - Show the demand forecast\n" +
			"/help - Show this help message"

	case "tanks":
		log.Printf("Handling /tanks command for user %s", message.From.UserName)
		t.handleTanksCommand(msg)

	case "tank":
		args := message.CommandArguments()
		log.Printf("Handling /tank command with args '%s' for user %s", args, message.From.UserName)
		t.handleTankCommand(args, msg)

	case "alerts":
		log.Printf("Handling /alerts command for user %s", message.From.UserName)
		t.handleAlertsCommand(msg)

	case "forecast":
		log.Printf("Handling /forecast command for user %s", message.From.UserName)
		t.handleForecastCommand(msg)

	default:
		log.Printf("Received unknown command /%s from user %s", message.Command(), message.From.UserName)
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

// handleTanksCommand processes the /tanks command
func (t *TelegramBot) handleTanksCommand(msg *tgbotapi.MessageConfig) {
	tanks, summary, err := t.useCase.FleetOverview()
	if err != nil {
		msg.Text = "Error fetching tank data. Please try again later."
		log.Printf("Error fetching tank data: %v", err)
		return
	}

	msg.Text = fmt.Sprintf("Monitored tanks (%d total, %d warning, %d critical):\n\n",
		summary.Total, summary.Warning, summary.Critical)
	for _, tank := range tanks {
		msg.Text += fmt.Sprintf("%s %s (%s) - %s\n",
			statusEmoji(tank.Status), tank.Name, tank.ID, tank.Status)
	}
	msg.Text += "\nUse /tank [id] to get detailed information."
}

// handleTankCommand processes the /tank [id] command
func (t *TelegramBot) handleTankCommand(args string, msg *tgbotapi.MessageConfig) {
	if args == "" {
		msg.Text = "Please specify a tank ID. Example: /tank tank_001"
		return
	}

	tank, err := t.useCase.GetTankView(strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("No information found for tank '%s'. Use /tanks to see the monitored tanks.", args)
		log.Printf("Error fetching tank data: %v", err)
		return
	}

	msg.Text = formatTankInfo(tank)
}

// handleAlertsCommand processes the /alerts command
func (t *TelegramBot) handleAlertsCommand(msg *tgbotapi.MessageConfig) {
	alerts, summary, err := t.useCase.Alerts()
	if err != nil {
		msg.Text = "Error fetching alert data. Please try again later."
		log.Printf("Error fetching alert data: %v", err)
		return
	}

	if len(alerts) == 0 {
		msg.Text = "No alerts at the moment. All tanks are within limits."
		return
	}

	msg.Text = fmt.Sprintf("Active alerts (%d critical, %d warning):\n\n",
		summary.Critical, summary.Warning)
	for _, alert := range alerts {
		msg.Text += fmt.Sprintf("[%s] %s: %s\n", strings.ToUpper(alert.Type), alert.TankID, alert.Message)
	}
}

// handleForecastCommand processes the /forecast command
func (t *TelegramBot) handleForecastCommand(msg *tgbotapi.MessageConfig) {
	result, err := t.useCase.ForecastDemand(context.Background())
	if err != nil {
		msg.Text = "Error building the demand forecast. Please try again later."
		log.Printf("Error building demand forecast: %v", err)
		return
	}

	forecast := result.Forecast
	supply := "sufficient"
	if !forecast.SupplyAdequacy.Sufficient {
		supply = "at risk"
	}
	msg.Text = fmt.Sprintf("Demand forecast for the next 7 days:\n\n"+
		"Weekly total: %d L\n"+
		"Average daily: %d L\n"+
		"Peak day: %s\n"+
		"Low day: %s\n"+
		"Supply: %s\n",
		forecast.WeeklyTotalDemandLiters, forecast.AverageDailyDemandLiters,
		forecast.PeakDemandDay, forecast.LowDemandDay, supply)
}

// handleNonCommand processes regular messages
func (t *TelegramBot) handleNonCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	log.Printf("Received non-command message from user %s: %s", message.From.UserName, message.Text)

	if strings.HasPrefix(message.Text, "/tank ") {
		tankID := strings.TrimPrefix(message.Text, "/tank ")
		t.handleTankCommand(tankID, msg)
		return
	}

	msg.Text = "I don't understand. Use /help to see available commands."
}

// formatTankInfo renders a single tank as a Telegram message
func formatTankInfo(tank *entities.TankView) string {
	var response strings.Builder
	response.WriteString(fmt.Sprintf("%s %s (%s)\n", statusEmoji(tank.Status), tank.Name, tank.ID))
	response.WriteString(fmt.Sprintf("Status: %s\n", tank.Status))
	response.WriteString(fmt.Sprintf("Water level: %d%%\n", tank.CurrentLevelPercent))
	response.WriteString(fmt.Sprintf("pH: %.2f\n", tank.CurrentReadings.PHOrDefault()))
	response.WriteString(fmt.Sprintf("Turbidity: %.2f NTU\n", tank.CurrentReadings.Turbidity))
	response.WriteString(fmt.Sprintf("Temperature: %.1f °C\n", tank.CurrentReadings.TemperatureOrDefault()))
	response.WriteString(fmt.Sprintf("Days since cleaned: %d\n", tank.DaysSinceCleaned))
	if tank.NextMaintenance != "" {
		response.WriteString(fmt.Sprintf("Next maintenance: %s\n", tank.NextMaintenance))
	}
	return response.String()
}

func statusEmoji(status string) string {
	switch status {
	case entities.StatusCritical:
		return "🔴"
	case entities.StatusWarning:
		return "🟡"
	default:
		return "🟢"
	}
}
