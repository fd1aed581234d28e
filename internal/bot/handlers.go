package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/ai"
	"github.com/iotsystems/hdlbot/internal/config"
	"github.com/iotsystems/hdlbot/internal/disk"
	"github.com/iotsystems/hdlbot/internal/models"
	"github.com/iotsystems/hdlbot/internal/search"
	"github.com/iotsystems/hdlbot/pkg/utils"
)

// pinnedKNXCableURL overrides the generated viewer link for the YE00820 cable
// datasheet. The generated link breaks on this file because of the comma in
// its name, so the known-good link is pinned.
const pinnedKNXCableURL = "https://docs.360.yandex.ru/docs/view?url=ya-disk-public%3A%2F%2FxJi6eEXBTq01sw%3A%2F01.%20iOT%20Systems%2F02.%20iOT%20%D0%9A%D0%B0%D0%B1%D0%B5%D0%BB%D1%8C%2FYE00820%20KNX%20%D0%BA%D0%B0%D0%B1%D0%B5%D0%BB%D1%8C%20J-Y(St)Y%202x2x0%2C8.pdf&name=YE00820%20KNX%20%D0%BA%D0%B0%D0%B1%D0%B5%D0%BB%D1%8C&nosw=1"

// Bot wires the Telegram API to the search engine, the drive client, and the
// assistant.
type Bot struct {
	api       *API
	engine    *search.Engine
	assistant *ai.Client
	drive     *disk.Client
	cfg       config.TelegramConfig
	limit     int
	sessions  *sessionStore
	logger    *zap.Logger
}

// New creates a Bot.
func New(api *API, engine *search.Engine, assistant *ai.Client, drive *disk.Client, cfg config.TelegramConfig, resultLimit int, logger *zap.Logger) *Bot {
	return &Bot{
		api:       api,
		engine:    engine,
		assistant: assistant,
		drive:     drive,
		cfg:       cfg,
		limit:     resultLimit,
		sessions:  newSessionStore(),
		logger:    logger,
	}
}

// HandleUpdate dispatches one incoming update. Errors are logged, never
// returned: a failed reply must not stop the update loop.
func (b *Bot) HandleUpdate(ctx context.Context, u Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.Text != "":
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	sess := b.sessions.get(chatID)

	// Stateful steps first: the form and the broadcast consume any text.
	switch sess.state {
	case stateAwaitName:
		b.handleFormName(ctx, chatID, sess, text)
		return
	case stateAwaitPhone:
		b.handleFormPhone(ctx, chatID, msg.From, sess, text)
		return
	case stateAwaitBroadcast:
		b.handleBroadcast(ctx, chatID, sess, text)
		return
	}

	switch {
	case text == "/start":
		b.reply(ctx, chatID, msgStart, mainKeyboard())
	case text == "/admin":
		b.handleAdminCommand(ctx, chatID, msg.From, sess)
	case text == btnSearch:
		b.reply(ctx, chatID, msgSearchPrompt, nil)
	case text == btnDocs:
		b.reply(ctx, chatID, msgDocs, docsKeyboard())
	case text == btnFAQ:
		b.reply(ctx, chatID, "❓ Частые вопросы:", faqKeyboard())
	case text == btnCourses:
		b.replyWithLink(ctx, chatID, msgCourses, "🎓 Открыть материалы", b.cfg.CoursesURL)
	case text == btnSupport:
		b.reply(ctx, chatID, msgSupportIntro, supportKeyboard(b.cfg.SupportURL))
	case isGreeting(text):
		b.reply(ctx, chatID, msgStart, mainKeyboard())
	default:
		b.handleSearchQuery(ctx, chatID, sess, text)
	}
}

// handleSearchQuery is the main flow: route to the assistant or run the
// hybrid search and render the results.
func (b *Bot) handleSearchQuery(ctx context.Context, chatID int64, sess *session, query string) {
	sess.originalQuery = query
	sess.askedAI = false

	b.logger.Info("query",
		zap.Int64("chat_id", chatID),
		zap.String("query", query),
		zap.String("normalized", b.engine.Normalize(query)))

	if b.engine.ShouldUseAIDirectly(query) {
		b.answerWithAI(ctx, chatID, sess, query, "")
		return
	}

	results := b.engine.HybridSearch(query, b.limit)
	if len(results) == 0 {
		// No documentation found: hand the query to the assistant.
		if b.assistant == nil {
			b.reply(ctx, chatID, msgNothingFound, notHelpfulKeyboard())
			return
		}
		b.answerWithAI(ctx, chatID, sess, query,
			"Поиск по базе документации не дал результатов по этому запросу.")
		return
	}

	links := make([]resultLink, 0, len(results))
	for _, r := range results {
		links = append(links, b.renderResult(r))
	}

	text := msgResultsHeader
	markup := resultsKeyboard(links)
	if b.engine.HasOnlyTechnicalFiles(results) {
		// Datasheets rarely answer how-to questions, so offer the
		// assistant right away instead of behind the thumbs-down.
		text += "\n\n" + msgTechnicalOnlyNudge
		markup.InlineKeyboard = append(markup.InlineKeyboard, []InlineKeyboardButton{
			{Text: "🤖 Спросить ассистента", CallbackData: cbAskAI},
		})
	}
	text += "\n\n" + msgResultsFeedback
	b.reply(ctx, chatID, text, markup)
}

// renderResult turns a search result into a link button. Folder results carry
// their own URL; documents go through the docs viewer.
func (b *Bot) renderResult(r models.SearchResult) resultLink {
	if r.IsFolderLink {
		return resultLink{Title: r.Name, URL: r.FolderLink}
	}
	title := "📄 " + utils.Truncate(strings.TrimSuffix(r.Name, ".pdf"), 50)
	if strings.Contains(strings.ToLower(r.Name), "ye00820") {
		return resultLink{Title: title, URL: pinnedKNXCableURL}
	}
	return resultLink{Title: title, URL: b.drive.BuildDocsURL(r.Path)}
}

func (b *Bot) answerWithAI(ctx context.Context, chatID int64, sess *session, query, extraContext string) {
	if b.assistant == nil {
		b.reply(ctx, chatID, msgAIUnavailable, supportKeyboard(b.cfg.SupportURL))
		return
	}
	b.reply(ctx, chatID, msgAskAIThinking, nil)

	answer, err := b.assistant.Ask(ctx, query, extraContext)
	if err != nil {
		b.logger.Warn("assistant failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		if errors.Is(err, ai.ErrRateLimited) {
			b.reply(ctx, chatID, msgAIRateLimited, nil)
		} else {
			b.reply(ctx, chatID, msgAIUnavailable, supportKeyboard(b.cfg.SupportURL))
		}
		return
	}

	sess.askedAI = true
	b.replyPlain(ctx, chatID, answer, aiAnswerKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, cb *CallbackQuery) {
	if err := b.api.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.logger.Debug("answer callback failed", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	sess := b.sessions.get(chatID)

	switch {
	case cb.Data == cbHelpfulYes:
		b.dropKeyboard(ctx, chatID, cb.Message.MessageID)
		b.reply(ctx, chatID, msgHelpfulThanks, nil)

	case cb.Data == cbHelpfulNo:
		b.dropKeyboard(ctx, chatID, cb.Message.MessageID)
		if sess.askedAI {
			// Search and assistant both failed this user; go straight
			// to the form.
			b.startSupportForm(ctx, chatID, sess)
			return
		}
		b.reply(ctx, chatID, msgNotHelpful, notHelpfulKeyboard())

	case cb.Data == cbNewSearch:
		b.sessions.reset(chatID)
		b.reply(ctx, chatID, msgNewSearch, nil)

	case cb.Data == cbAskAI:
		if sess.originalQuery == "" {
			b.reply(ctx, chatID, msgSearchPrompt, nil)
			return
		}
		// The user already searched and thumbed it down; tell the model.
		b.answerWithAI(ctx, chatID, sess, sess.originalQuery,
			"Пользователь уже искал это в базе документации, найденное не помогло.")

	case cb.Data == cbSupportForm:
		b.startSupportForm(ctx, chatID, sess)

	case strings.HasPrefix(cb.Data, cbFAQPrefix):
		b.handleFAQ(ctx, chatID, strings.TrimPrefix(cb.Data, cbFAQPrefix))
	}
}

func (b *Bot) handleFAQ(ctx context.Context, chatID int64, key string) {
	for _, topic := range faqTopics {
		if topic.Key == key {
			b.reply(ctx, chatID, topic.Answer, nil)
			return
		}
	}
	b.logger.Debug("unknown faq key", zap.String("key", key))
}

// Support ticket form.

func (b *Bot) startSupportForm(ctx context.Context, chatID int64, sess *session) {
	sess.state = stateAwaitName
	b.reply(ctx, chatID, msgFormName, nil)
}

func (b *Bot) handleFormName(ctx context.Context, chatID int64, sess *session, text string) {
	if text == "" {
		b.reply(ctx, chatID, msgFormName, nil)
		return
	}
	sess.name = utils.Truncate(text, 100)
	sess.state = stateAwaitPhone
	b.reply(ctx, chatID, msgFormPhone, nil)
}

func (b *Bot) handleFormPhone(ctx context.Context, chatID int64, from *User, sess *session, text string) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if len(digits) != 10 {
		b.reply(ctx, chatID, msgFormPhoneInvalid, nil)
		return
	}

	ticket := models.Ticket{
		ID:        uuid.NewString()[:8],
		UserID:    chatID,
		FullName:  sess.name,
		Phone:     "+7" + digits,
		Query:     sess.originalQuery,
		CreatedAt: time.Now(),
	}
	if from != nil {
		ticket.Username = from.Username
	}
	b.sessions.reset(chatID)

	if err := b.deliverTicket(ctx, ticket); err != nil {
		b.logger.Error("ticket delivery failed",
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
		b.reply(ctx, chatID, msgFormDeliveryFailed, supportKeyboard(b.cfg.SupportURL))
		return
	}
	b.reply(ctx, chatID, msgFormDone, mainKeyboard())
}

func (b *Bot) deliverTicket(ctx context.Context, t models.Ticket) error {
	if b.cfg.SupportChatID == 0 {
		return fmt.Errorf("support chat not configured")
	}
	username := "нет"
	if t.Username != "" {
		username = "@" + escapeHTML(t.Username)
	}
	query := "не указан"
	if t.Query != "" {
		query = escapeHTML(t.Query)
	}
	text := fmt.Sprintf(
		"🎫 <b>Новая заявка #%s</b>\n\n"+
			"👤 Имя: %s\n"+
			"📞 Телефон: %s\n"+
			"💬 Telegram: %s\n"+
			"🔍 Запрос: %s",
		t.ID, escapeHTML(t.FullName), t.Phone, username, query)

	_, err := b.api.SendMessage(ctx, SendMessageRequest{
		ChatID:    b.cfg.SupportChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}

// Admin broadcast.

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, from *User, sess *session) {
	if from == nil || !b.isAdmin(from.ID) {
		b.reply(ctx, chatID, msgNotAdmin, nil)
		return
	}
	sess.state = stateAwaitBroadcast
	b.reply(ctx, chatID, msgBroadcastPrompt, nil)
}

func (b *Bot) handleBroadcast(ctx context.Context, chatID int64, sess *session, text string) {
	b.sessions.reset(chatID)
	if text == "" {
		return
	}
	delivered := 0
	for _, target := range b.cfg.BroadcastIDs {
		if _, err := b.api.SendMessage(ctx, SendMessageRequest{
			ChatID:    target,
			Text:      text,
			ParseMode: "HTML",
		}); err != nil {
			b.logger.Warn("broadcast delivery failed",
				zap.Int64("target", target),
				zap.Error(err))
			continue
		}
		delivered++
	}
	b.logger.Info("broadcast sent",
		zap.Int("delivered", delivered),
		zap.Int("targets", len(b.cfg.BroadcastIDs)))
	b.reply(ctx, chatID, msgBroadcastDone, nil)
}

func (b *Bot) isAdmin(userID int64) bool {
	for _, id := range b.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Reply helpers.

func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup any) {
	b.send(ctx, SendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
		ReplyMarkup:           markup,
	})
}

// replyPlain sends without a parse mode; used for assistant answers, which
// are not valid HTML.
func (b *Bot) replyPlain(ctx context.Context, chatID int64, text string, markup any) {
	b.send(ctx, SendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: true,
		ReplyMarkup:           markup,
	})
}

func (b *Bot) replyWithLink(ctx context.Context, chatID int64, text, linkTitle, linkURL string) {
	var markup *InlineKeyboardMarkup
	if linkURL != "" {
		markup = &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: linkTitle, URL: linkURL}},
		}}
	}
	b.reply(ctx, chatID, text, markup)
}

func (b *Bot) send(ctx context.Context, req SendMessageRequest) {
	if _, err := b.api.SendMessage(ctx, req); err != nil {
		b.logger.Error("send failed",
			zap.Int64("chat_id", req.ChatID),
			zap.Error(err))
	}
}

func (b *Bot) dropKeyboard(ctx context.Context, chatID, messageID int64) {
	if err := b.api.EditMessageReplyMarkup(ctx, chatID, messageID, nil); err != nil {
		b.logger.Debug("drop keyboard failed", zap.Error(err))
	}
}

func isGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if len([]rune(lower)) > 25 {
		return false
	}
	for _, g := range greetingWords {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
