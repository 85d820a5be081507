package telegram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type routedCall struct {
	method     string
	purchaseID int64
	text       string
}

type recordingReviewHandler struct {
	calls []routedCall
}

func (h *recordingReviewHandler) StartApproval(_ context.Context, _, _, purchaseID int64) error {
	h.calls = append(h.calls, routedCall{method: "approve", purchaseID: purchaseID})
	return nil
}

func (h *recordingReviewHandler) StartRejection(_ context.Context, _, _, purchaseID int64) error {
	h.calls = append(h.calls, routedCall{method: "reject", purchaseID: purchaseID})
	return nil
}

func (h *recordingReviewHandler) HandleText(_ context.Context, _, _ int64, text string) error {
	h.calls = append(h.calls, routedCall{method: "text", text: text})
	return nil
}

func (h *recordingReviewHandler) Cancel(_ context.Context, _, _ int64) error {
	h.calls = append(h.calls, routedCall{method: "cancel"})
	return nil
}

type recordingCommand struct {
	calls []string
}

func (c *recordingCommand) Execute(_ context.Context, _, _ int64, arg string) error {
	c.calls = append(c.calls, arg)
	return nil
}

func textUpdate(text string) *tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: 100, FirstName: "Айбек"},
		Chat:      &tgbotapi.Chat{ID: 100},
		Text:      text,
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return &tgbotapi.Update{UpdateID: 1, Message: msg}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		text string
		want routedCall
	}{
		{
			name: "approve with underscore",
			text: "/approve_15",
			want: routedCall{method: "approve", purchaseID: 15},
		},
		{
			name: "approve without underscore",
			text: "/approve15",
			want: routedCall{method: "approve", purchaseID: 15},
		},
		{
			name: "reject with underscore",
			text: "/reject_7",
			want: routedCall{method: "reject", purchaseID: 7},
		},
		{
			name: "reject without underscore",
			text: "/reject7",
			want: routedCall{method: "reject", purchaseID: 7},
		},
		{
			name: "cancel",
			text: "/cancel",
			want: routedCall{method: "cancel"},
		},
		{
			name: "plain text goes to review handler",
			text: "user@mail.ru|pass123",
			want: routedCall{method: "text", text: "user@mail.ru|pass123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := &recordingReviewHandler{}
			router := NewRouter(review, &recordingCommand{}, &recordingCommand{},
				slog.New(slog.NewTextHandler(io.Discard, nil)))

			if err := router.Route(textUpdate(tt.text)); err != nil {
				t.Fatalf("Route(%q): %v", tt.text, err)
			}
			if len(review.calls) != 1 {
				t.Fatalf("Route(%q) produced %d calls, want 1", tt.text, len(review.calls))
			}
			if review.calls[0] != tt.want {
				t.Errorf("Route(%q) = %+v, want %+v", tt.text, review.calls[0], tt.want)
			}
		})
	}
}

func TestRouteCommandsNeverReachTextHandler(t *testing.T) {
	// Команда с id, но с мусором после — не approve и не текст
	for _, text := range []string{"/approve_abc", "/unknown", "/approve_"} {
		review := &recordingReviewHandler{}
		router := NewRouter(review, &recordingCommand{}, &recordingCommand{},
			slog.New(slog.NewTextHandler(io.Discard, nil)))

		if err := router.Route(textUpdate(text)); err != nil {
			t.Fatalf("Route(%q): %v", text, err)
		}
		if len(review.calls) != 0 {
			t.Errorf("Route(%q) produced calls %+v, want none", text, review.calls)
		}
	}
}

func TestRouteSlashTextWithoutEntityIgnored(t *testing.T) {
	// Кириллическую псевдокоманду Telegram не размечает как
	// bot_command — но ответом оператора она быть не должна
	for _, text := range []string{"/подтвердить", "/отклонить давно жду"} {
		review := &recordingReviewHandler{}
		router := NewRouter(review, &recordingCommand{}, &recordingCommand{},
			slog.New(slog.NewTextHandler(io.Discard, nil)))

		upd := textUpdate(text)
		upd.Message.Entities = nil
		if err := router.Route(upd); err != nil {
			t.Fatalf("Route(%q): %v", text, err)
		}
		if len(review.calls) != 0 {
			t.Errorf("Route(%q) produced calls %+v, want none", text, review.calls)
		}
	}
}

func TestRouteNotifyPassesArguments(t *testing.T) {
	notify := &recordingCommand{}
	router := NewRouter(&recordingReviewHandler{}, &recordingCommand{}, notify,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := router.Route(textUpdate("/notify скидка 20% до пятницы")); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(notify.calls) != 1 || notify.calls[0] != "скидка 20% до пятницы" {
		t.Errorf("notify calls = %v", notify.calls)
	}
}

func TestRouteIgnoresNonMessageUpdates(t *testing.T) {
	router := NewRouter(&recordingReviewHandler{}, &recordingCommand{}, &recordingCommand{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := router.Route(&tgbotapi.Update{UpdateID: 1}); err != nil {
		t.Errorf("Route(empty update): %v", err)
	}
}
