package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"prompt-studio/internal/mediagroup"
	"prompt-studio/internal/preview"
	"prompt-studio/internal/studio"
)

// Messenger is the part of the Telegram client the wizard talks to.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendTextWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (int, error)
	EditTextWithKeyboard(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID, text string, alert bool) error
	SendPhoto(chatID int64, img preview.Image, caption string) error
	DownloadFile(ctx context.Context, fileID string) (preview.ImageInput, error)
	SendTyping(chatID int64)
	SendUploadingPhoto(chatID int64)
}

type Options struct {
	Telegram Messenger
	// Preview may be nil; outputs are then text-only.
	Preview  *preview.Service
	Sessions *studio.Store
	Logger   *slog.Logger
}

type Handler struct {
	tg         Messenger
	preview    *preview.Service
	sessions   *studio.Store
	logger     *slog.Logger
	aggregator *mediagroup.Aggregator
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = studio.NewStore()
	}

	return &Handler{
		tg:       opts.Telegram,
		preview:  opts.Preview,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) SetMediaGroupAggregator(ag *mediagroup.Aggregator) {
	h.aggregator = ag
}

// Commands is the list published to the Telegram command menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "new", Description: "Start a product: /new <name> [cat=… style=… ar=…]"},
		{Command: "name", Description: "Set the product name"},
		{Command: "generate", Description: "Build the six prompts"},
		{Command: "reset", Description: "Start over"},
		{Command: "cancel", Description: "Stop waiting for input"},
		{Command: "help", Description: "How to use the studio"},
	}
}

const helpText = "🧪 Product Prompt Studio\n\n" +
	"Describe a product once and get six ready-to-use image generation prompts.\n\n" +
	"/new <name> [options] - start a product\n" +
	"    options: cat=beauty style=Luxury light=\"Golden Hour\" ar=9:16 res=4K color=#FF6600 mascot=off props=on\n" +
	"/name <text> - set the product name\n" +
	"/generate - build the six prompts\n" +
	"/reset - start over\n" +
	"/cancel - stop waiting for input\n" +
	"/help - this message\n\n" +
	"Send a photo or an album to attach a reference image. A caption is read like /new options."

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return h.handleCallback(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	if len(msg.Photo) > 0 {
		return h.handlePhoto(ctx, chatID, userID, msg)
	}

	if msg.Text != "" {
		return h.handleText(ctx, chatID, userID, msg.Text)
	}

	return nil
}

// HandleMediaGroup attaches the largest photo of an album as the reference.
func (h *Handler) HandleMediaGroup(ctx context.Context, group mediagroup.Group) {
	fileIDs := make([]string, 0, len(group.Photos))
	for _, p := range group.Photos {
		fileIDs = append(fileIDs, p.FileID)
	}
	if err := h.processPhotos(ctx, group.ChatID, group.UserID, group.Caption, fileIDs); err != nil {
		h.logger.Error("media group processing failed", "err", err)
	}
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		h.resetSession(chatID, userID)
		if err := h.tg.SendText(chatID, helpText); err != nil {
			return err
		}
		return h.renderUI(chatID, userID, 0, false)
	case "help":
		return h.tg.SendText(chatID, helpText)
	case "new":
		form, err := studio.ParseArgs(args, studio.DefaultForm())
		if err != nil {
			return h.tg.SendText(chatID, "❌ "+err.Error())
		}
		h.resetSession(chatID, userID)
		h.sessions.Update(chatID, userID, func(st *studio.Session) {
			st.Form = form
			st.AwaitingName = strings.TrimSpace(form.ProductName) == ""
		})
		return h.renderUI(chatID, userID, 0, false)
	case "name":
		if args == "" {
			h.sessions.Update(chatID, userID, func(st *studio.Session) {
				st.AwaitingName = true
				st.AwaitingPhoto = false
			})
			return h.tg.SendText(chatID, "✏️ Send the product name (cancel: /cancel).")
		}
		h.setName(chatID, userID, args)
		return h.renderUI(chatID, userID, 0, false)
	case "generate":
		return h.generate(ctx, chatID, userID, "", 0)
	case "reset":
		h.resetSession(chatID, userID)
		if err := h.tg.SendText(chatID, "✅ Project cleared."); err != nil {
			return err
		}
		return h.renderUI(chatID, userID, 0, false)
	case "cancel":
		h.sessions.Update(chatID, userID, func(st *studio.Session) {
			st.AwaitingName = false
			st.AwaitingPhoto = false
		})
		return h.tg.SendText(chatID, "Cancelled.")
	default:
		return h.tg.SendText(chatID, "❌ Unknown command. Use /help.")
	}
}

func (h *Handler) handleText(ctx context.Context, chatID int64, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	st := h.sessions.Get(chatID, userID)
	if !st.AwaitingName {
		return h.tg.SendText(chatID, "Use /new <product name> to start, or /help.")
	}

	h.setName(chatID, userID, text)
	return h.renderUI(chatID, userID, 0, false)
}

func (h *Handler) handlePhoto(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	photo := largestPhotoSize(msg.Photo)

	if msg.MediaGroupID != "" && h.aggregator != nil {
		h.aggregator.Add(mediagroup.Item{
			ChatID:       chatID,
			UserID:       userID,
			MediaGroupID: msg.MediaGroupID,
			Caption:      msg.Caption,
			FileID:       photo.FileID,
			FileSize:     photo.FileSize,
		})
		return nil
	}

	return h.processPhotos(ctx, chatID, userID, msg.Caption, []string{photo.FileID})
}

// processPhotos downloads every photo, keeps the largest as the form's
// reference image and applies the caption as /new options.
func (h *Handler) processPhotos(ctx context.Context, chatID int64, userID int64, caption string, fileIDs []string) error {
	if len(fileIDs) == 0 {
		return nil
	}
	h.tg.SendTyping(chatID)

	downloads := make([]preview.ImageInput, len(fileIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, fileID := range fileIDs {
		i := i
		fileID := fileID
		eg.Go(func() error {
			img, err := h.tg.DownloadFile(egCtx, fileID)
			if err != nil {
				return fmt.Errorf("download %s: %w", fileID, err)
			}
			downloads[i] = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		h.logger.Error("photo download failed", "err", err)
		return h.tg.SendText(chatID, "❌ Could not download the photo. Please send it again.")
	}

	ref := largestImage(downloads)
	dataURL := preview.EncodeDataURL(ref.Data, ref.MimeType)

	st := h.sessions.Get(chatID, userID)
	form := st.Form
	caption = strings.TrimSpace(caption)
	if caption != "" {
		parsed, err := studio.ParseArgs(caption, form)
		if err != nil {
			_ = h.tg.SendText(chatID, "❌ Caption ignored: "+err.Error())
		} else {
			form = parsed
		}
	}

	h.sessions.Update(chatID, userID, func(st *studio.Session) {
		if caption != "" {
			st.InvalidateOutputs()
		}
		st.Form = form
		st.Form.ImageRef = dataURL
		st.AwaitingPhoto = false
		if strings.TrimSpace(form.ProductName) != "" {
			st.AwaitingName = false
		}
	})

	note := "📷 Reference image attached."
	if len(fileIDs) > 1 {
		note = fmt.Sprintf("📷 Reference image attached (largest of %d).", len(fileIDs))
	}
	if err := h.tg.SendText(chatID, note); err != nil {
		return err
	}
	return h.renderUI(chatID, userID, 0, false)
}

func (h *Handler) setName(chatID, userID int64, name string) {
	h.sessions.Update(chatID, userID, func(st *studio.Session) {
		st.Form.ProductName = strings.TrimSpace(name)
		st.AwaitingName = false
		st.InvalidateOutputs()
		if st.Menu == "outputs" {
			st.Menu = "main"
		}
	})
}

// resetSession restores defaults, keeps the UI message id and drops any
// preview still running for the user.
func (h *Handler) resetSession(chatID, userID int64) {
	prev := h.sessions.Get(chatID, userID)
	h.sessions.Reset(chatID, userID)
	h.sessions.Update(chatID, userID, func(st *studio.Session) { st.MessageID = prev.MessageID })
	if h.preview.Enabled() {
		h.preview.Invalidate(previewKey(chatID, userID))
	}
}

func previewKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

func largestPhotoSize(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	var best tgbotapi.PhotoSize
	for i, p := range sizes {
		if i == 0 || p.FileSize > best.FileSize ||
			(p.FileSize == best.FileSize && p.Width*p.Height > best.Width*best.Height) {
			best = p
		}
	}
	return best
}

func largestImage(images []preview.ImageInput) preview.ImageInput {
	var best preview.ImageInput
	for _, img := range images {
		if len(img.Data) > len(best.Data) {
			best = img
		}
	}
	return best
}
