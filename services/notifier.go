package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
)

// notifyTimeout bounds a single background notification
const notifyTimeout = 15 * time.Second

// Notifier tells the operators about new orders
type Notifier interface {
	NotifyNewOrder(ctx context.Context, order *models.Order) error
}

var notifierInstance Notifier = NoopNotifier{}

// InitNotifier picks Telegram when both bot settings are present
func InitNotifier(cfg *config.Config) Notifier {
	if cfg.TelegramEnabled() {
		notifierInstance = NewTelegramNotifier(cfg)
	} else {
		log.Println("Telegram not configured - order notifications disabled")
		notifierInstance = NoopNotifier{}
	}
	return notifierInstance
}

// GetNotifier returns the initialized notifier
func GetNotifier() Notifier {
	return notifierInstance
}

// SetNotifier sets the notifier instance (primarily for testing)
func SetNotifier(n Notifier) {
	notifierInstance = n
}

// NotifyAsync sends the notification in the background. Failures are only
// logged.
func NotifyAsync(n Notifier, order models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.NotifyNewOrder(ctx, &order); err != nil {
			log.Printf("Failed to send order notification for %s: %v", order.OrderNumber, err)
		}
	}()
}

// NoopNotifier skips notifications
type NoopNotifier struct{}

func (NoopNotifier) NotifyNewOrder(ctx context.Context, order *models.Order) error {
	log.Printf("Telegram not configured - skipping notification for %s", order.OrderNumber)
	return nil
}

// TelegramNotifier posts order summaries through the Telegram Bot API
type TelegramNotifier struct {
	apiURL     string
	botToken   string
	chatID     string
	appURL     string
	location   *time.Location
	httpClient *http.Client
	now        func() time.Time
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramNotifier creates a notifier for the configured bot and chat
func NewTelegramNotifier(cfg *config.Config) *TelegramNotifier {
	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		loc = time.FixedZone("AST", 3*60*60)
	}
	return &TelegramNotifier{
		apiURL:   strings.TrimRight(cfg.TelegramAPIURL, "/"),
		botToken: cfg.TelegramBotToken,
		chatID:   cfg.TelegramChatID,
		appURL:   strings.TrimRight(cfg.AppURL, "/"),
		location: loc,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// NotifyNewOrder sends the order summary to the operators' chat
func (n *TelegramNotifier) NotifyNewOrder(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(telegramMessage{
		ChatID:    n.chatID,
		Text:      n.FormatMessage(order),
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result telegramResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if !result.OK {
		return fmt.Errorf("telegram error: %s", result.Description)
	}

	log.Printf("Telegram notification sent for %s", order.OrderNumber)
	return nil
}

// FormatMessage renders the Markdown order summary
func (n *TelegramNotifier) FormatMessage(order *models.Order) string {
	cost := pricing.TBDMarkerEN
	if order.TotalCost != nil {
		cost = pricing.FormatMoney(*order.TotalCost, "en")
	}

	var b strings.Builder
	b.WriteString("🐝 *NEW ORDER RECEIVED* 🐝\n\n")
	fmt.Fprintf(&b, "📋 *Order Number:* `%s`\n\n", order.OrderNumber)
	b.WriteString("👤 *Customer Information:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", escapeMarkdown(order.CustomerName()))
	fmt.Fprintf(&b, "• Phone: %s\n", escapeMarkdown(order.Phone))
	fmt.Fprintf(&b, "• Email: %s\n\n", escapeMarkdown(order.Email))
	fmt.Fprintf(&b, "🔧 *Service:* %s\n\n", pricing.Label(order.ServiceType, "en"))
	fmt.Fprintf(&b, "💰 *Estimated Cost:* %s\n\n", cost)
	fmt.Fprintf(&b, "📅 *Date:* %s\n\n", n.now().In(n.location).Format("1/2/2006, 3:04:05 PM"))
	fmt.Fprintf(&b, "🔗 [View in Admin Panel](%s/admin)", n.appURL)
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
