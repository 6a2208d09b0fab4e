// Package notify delivers best-effort lead notifications to a Telegram chat.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/apexautolab/leadapi/internal/domain/lead"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram sends lead notifications through the Bot API. With no bot token
// or chat id configured every call is a silent no-op; the channel is
// optional infrastructure, not a dependency.
type Telegram struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegram creates a Telegram notifier. Either argument may be empty.
func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultAPIBase,
		client:   http.DefaultClient,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// LeadCreated posts the formatted lead to the configured chat. Errors are
// returned for the caller to log; the caller never propagates them.
func (t *Telegram) LeadCreated(ctx context.Context, l *lead.Lead) error {
	if t.botToken == "" || t.chatID == "" {
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  formatLead(l),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("encoding telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusOK || !body.OK {
		if body.Description != "" {
			return fmt.Errorf("telegram send failed: %s", body.Description)
		}
		return fmt.Errorf("telegram send failed: status %d", resp.StatusCode)
	}

	return nil
}

// escaper neutralizes HTML-significant characters before values are embedded
// in the parse_mode=HTML message body.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func formatLead(l *lead.Lead) string {
	var b strings.Builder
	b.WriteString("<b>Apex Autolab • Нова заявка</b>\n")
	fmt.Fprintf(&b, "<b>ID:</b> %d\n", l.ID)
	fmt.Fprintf(&b, "<b>Імʼя:</b> %s\n", orDash(l.Name))
	fmt.Fprintf(&b, "<b>Телефон:</b> %s\n", escaper.Replace(l.Phone))
	fmt.Fprintf(&b, "<b>Авто:</b> %s\n", orDash(l.Car))
	fmt.Fprintf(&b, "<b>Повідомлення:</b> %s\n", orDash(l.Message))
	if l.Page != nil && *l.Page != "" {
		fmt.Fprintf(&b, "<b>Сторінка:</b> %s\n", escaper.Replace(*l.Page))
	}
	return b.String()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return escaper.Replace(*s)
}
