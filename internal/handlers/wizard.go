package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"prompt-studio/internal/preview"
	"prompt-studio/internal/studio"
)

const callbackPrefix = "ps"

const emptyNameMessage = "Please enter a product name first."

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q == nil || q.Message == nil || q.Message.Chat == nil || q.From == nil {
		return nil
	}
	ownerID, action, args, ok := parseCallback(q.Data)
	if !ok {
		return nil
	}
	if ownerID != q.From.ID {
		_ = h.tg.AnswerCallback(q.ID, "This menu belongs to someone else.", true)
		return nil
	}

	chatID := q.Message.Chat.ID
	msgID := q.Message.MessageID

	switch action {
	case "generate":
		return h.generate(ctx, chatID, ownerID, q.ID, msgID)
	case "out":
		if len(args) < 1 {
			return nil
		}
		return h.selectOutput(ctx, chatID, ownerID, q.ID, msgID, args[0])
	case "reset":
		h.resetSession(chatID, ownerID)
		_ = h.tg.AnswerCallback(q.ID, "Project cleared", false)
		return h.renderUI(chatID, ownerID, msgID, true)
	}

	h.sessions.Update(chatID, ownerID, func(st *studio.Session) {
		st.MessageID = msgID
		applyAction(st, action, args)
	})

	switch action {
	case "name":
		_ = h.tg.AnswerCallback(q.ID, "Send the product name", false)
		_ = h.tg.SendText(chatID, "✏️ Send the product name (cancel: /cancel).")
	case "photo":
		_ = h.tg.AnswerCallback(q.ID, "Send a photo", false)
		_ = h.tg.SendText(chatID, "📷 Send a reference photo (cancel: /cancel).")
	default:
		_ = h.tg.AnswerCallback(q.ID, "OK", false)
	}

	return h.renderUI(chatID, ownerID, msgID, true)
}

// applyAction mutates the session for one keyboard press. Anything that
// changes prompt content drops previously generated outputs.
func applyAction(st *studio.Session, action string, args []string) {
	arg := func() (int, bool) {
		if len(args) < 1 {
			return 0, false
		}
		n, err := strconv.Atoi(args[0])
		return n, err == nil
	}

	switch action {
	case "menu":
		if len(args) >= 1 {
			st.Menu = args[0]
		}
	case "cat":
		cats := studio.Categories()
		if i, ok := arg(); ok && i >= 0 && i < len(cats) {
			st.Form.SetCategory(cats[i].Name)
			st.InvalidateOutputs()
		}
		st.Menu = "main"
	case "style":
		styles := studio.VisualStyles()
		if i, ok := arg(); ok && i >= 0 && i < len(styles) {
			st.Form.ToggleVisualStyle(styles[i])
			st.InvalidateOutputs()
		}
		st.Menu = "style"
	case "light":
		lights := studio.LightingStyles()
		if i, ok := arg(); ok && i >= 0 && i < len(lights) {
			st.Form.LightingStyle = lights[i]
			st.InvalidateOutputs()
		}
		st.Menu = "main"
	case "aspect":
		ratios := studio.AspectRatios()
		if i, ok := arg(); ok && i >= 0 && i < len(ratios) {
			st.Form.AspectRatio = ratios[i]
			st.InvalidateOutputs()
		}
		st.Menu = "main"
	case "mascot":
		st.Form.MascotEnabled = !st.Form.MascotEnabled
		st.InvalidateOutputs()
	case "props":
		st.Form.PropsEnabled = !st.Form.PropsEnabled
		st.InvalidateOutputs()
	case "name":
		st.AwaitingName = true
		st.AwaitingPhoto = false
	case "photo":
		st.AwaitingPhoto = true
		st.AwaitingName = false
	case "photo_clear":
		st.Form.ImageRef = ""
		st.AwaitingPhoto = false
	case "close":
		st.AwaitingName = false
		st.AwaitingPhoto = false
		st.Menu = "main"
	}

	if st.Menu == "outputs" && len(st.Outputs) == 0 {
		st.Menu = "main"
	}
}

// generate composes the six prompts, or asks for a name when it is missing.
// The first output is previewed right away when a backend is configured.
func (h *Handler) generate(ctx context.Context, chatID, userID int64, callbackID string, msgID int) error {
	st := h.sessions.Get(chatID, userID)
	if err := st.Form.Validate(); err != nil {
		h.sessions.Update(chatID, userID, func(st *studio.Session) {
			st.AwaitingName = true
			st.AwaitingPhoto = false
		})
		if callbackID != "" {
			_ = h.tg.AnswerCallback(callbackID, emptyNameMessage, true)
			return nil
		}
		return h.tg.SendText(chatID, "❌ "+emptyNameMessage+" Send it as a message or use /name <text>.")
	}

	first := studio.OutputID(1)
	h.sessions.Update(chatID, userID, func(st *studio.Session) {
		st.Form = st.Form.Normalize()
		st.Outputs = studio.Compose(st.Form)
		st.SelectedID = first
		st.Menu = "outputs"
		st.AwaitingName = false
		st.Phase = studio.PhaseConfiguring
		st.LastError = ""
		if msgID != 0 {
			st.MessageID = msgID
		}
	})

	if callbackID != "" {
		_ = h.tg.AnswerCallback(callbackID, fmt.Sprintf("%d prompts ready", studio.SlotCount), false)
	}
	if err := h.renderUI(chatID, userID, msgID, callbackID != ""); err != nil {
		return err
	}
	return h.runPreview(ctx, chatID, userID, first)
}

func (h *Handler) selectOutput(ctx context.Context, chatID, userID int64, callbackID string, msgID int, outputID string) error {
	st := h.sessions.Update(chatID, userID, func(st *studio.Session) {
		st.MessageID = msgID
		if _, ok := studio.FindOutput(st.Outputs, outputID); ok {
			st.SelectedID = outputID
		}
	})

	output, ok := st.Selected()
	if !ok || output.ID != outputID {
		_ = h.tg.AnswerCallback(callbackID, "These prompts are out of date. Press Generate again.", true)
		return h.renderUI(chatID, userID, msgID, true)
	}

	_ = h.tg.AnswerCallback(callbackID, output.Title, false)
	if err := h.renderUI(chatID, userID, msgID, true); err != nil {
		return err
	}
	if err := h.tg.SendText(chatID, promptMessage(output)); err != nil {
		return err
	}
	return h.runPreview(ctx, chatID, userID, outputID)
}

// runPreview renders one output. A result that was superseded by a newer
// request from the same user is dropped silently.
func (h *Handler) runPreview(ctx context.Context, chatID, userID int64, outputID string) error {
	if !h.preview.Enabled() {
		return nil
	}

	st := h.sessions.Update(chatID, userID, func(st *studio.Session) {
		st.Phase = studio.PhasePreviewing
		st.LastError = ""
	})
	output, ok := studio.FindOutput(st.Outputs, outputID)
	if !ok {
		return nil
	}

	h.tg.SendUploadingPhoto(chatID)
	img, err := h.preview.Preview(ctx, previewKey(chatID, userID), st.Form, output)
	if errors.Is(err, preview.ErrSuperseded) {
		h.logger.Debug("stale preview dropped", "chat_id", chatID, "user_id", userID, "output", outputID)
		return nil
	}
	if err != nil {
		h.logger.Error("preview failed", "err", err, "chat_id", chatID, "output", outputID)
		msg := previewFailureText(err)
		h.sessions.Update(chatID, userID, func(st *studio.Session) {
			st.Phase = studio.PhaseError
			st.LastError = msg
		})
		return h.tg.SendText(chatID, "❌ "+msg)
	}

	h.sessions.Update(chatID, userID, func(st *studio.Session) {
		if st.Phase == studio.PhasePreviewing {
			st.Phase = studio.PhaseConfiguring
		}
	})
	return h.tg.SendPhoto(chatID, img, fmt.Sprintf("✅ %s (%s)", output.Title, output.ID))
}

func previewFailureText(err error) string {
	switch {
	case errors.Is(err, preview.ErrNoImage):
		return "Visualization failed. Please try a different style."
	case errors.Is(err, preview.ErrRateLimited):
		return "Too many previews right now. Please wait a minute and try again."
	case errors.Is(err, preview.ErrBusy):
		return "The preview queue is full. Please try again shortly."
	case errors.Is(err, preview.ErrInvalidDataURL):
		return "The reference image could not be read. Please send it again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The preview took too long. Please try again."
	}
	return "Generation error. Please try again."
}

func (h *Handler) renderUI(chatID int64, userID int64, messageID int, edit bool) error {
	st := h.sessions.Get(chatID, userID)
	if messageID == 0 {
		messageID = st.MessageID
	}

	text := sessionText(st)
	kb := sessionKeyboard(userID, st)

	if edit && messageID != 0 {
		if err := h.tg.EditTextWithKeyboard(chatID, messageID, text, kb); err == nil {
			return nil
		}
	}

	msgID, err := h.tg.SendTextWithKeyboard(chatID, text, kb)
	if err != nil {
		return err
	}
	h.sessions.Update(chatID, userID, func(st *studio.Session) { st.MessageID = msgID })
	return nil
}

func promptMessage(o studio.PromptOutput) string {
	return fmt.Sprintf("%s\n%s - %s\n\n%s", o.Title, o.Purpose, o.Description, o.FullPrompt)
}

func sessionText(st studio.Session) string {
	f := st.Form

	name := strings.TrimSpace(f.ProductName)
	if name == "" {
		name = "(not set)"
	}
	styles := "(none)"
	if len(f.VisualStyles) > 0 {
		styles = strings.Join(f.VisualStyles, ", ")
	}
	ref := "none"
	if f.ImageRef != "" {
		ref = "attached ✅"
	}

	var b strings.Builder
	b.WriteString("🧪 Product Prompt Studio\n\n")
	b.WriteString(fmt.Sprintf("Product: %s\n", truncateLine(name, 80)))
	b.WriteString(fmt.Sprintf("Category: %s\n", f.Category))
	b.WriteString(fmt.Sprintf("Styles: %s\n", styles))
	b.WriteString(fmt.Sprintf("Lighting: %s\n", f.LightingStyle))
	b.WriteString(fmt.Sprintf("Aspect: %s, Resolution: %s\n", f.AspectRatio, f.Resolution))
	b.WriteString(fmt.Sprintf("Color: %s\n", f.PrimaryColor))
	b.WriteString(fmt.Sprintf("Mascot: %s, Props: %s\n", onOff(f.MascotEnabled), onOff(f.PropsEnabled)))
	b.WriteString(fmt.Sprintf("Reference: %s\n", ref))

	if intel := studio.Resolve(f.ProductName, f.Category); intel.Environment != "" {
		b.WriteString(fmt.Sprintf("Scene: %s\n", truncateLine(intel.Environment, 120)))
	}

	switch {
	case st.AwaitingName:
		b.WriteString("\n✏️ Send the product name as a message (cancel: /cancel).\n")
	case st.AwaitingPhoto:
		b.WriteString("\n📷 Send a reference photo (cancel: /cancel).\n")
	case st.Phase == studio.PhasePreviewing:
		b.WriteString("\n🎨 Rendering preview…\n")
	case st.Phase == studio.PhaseError && st.LastError != "":
		b.WriteString("\n❌ " + st.LastError + "\n")
	case len(st.Outputs) > 0:
		b.WriteString("\nPick a direction to get its full prompt.\n")
	default:
		b.WriteString("\nPress Generate when ready.\n")
	}

	if st.Menu == "outputs" && len(st.Outputs) > 0 {
		b.WriteString("\n")
		for _, o := range st.Outputs {
			mark := "  "
			if o.ID == st.SelectedID {
				mark = "▶ "
			}
			b.WriteString(fmt.Sprintf("%s%s %s (%s)\n", mark, o.ID, o.Title, o.Purpose))
		}
	}

	return strings.TrimSpace(b.String())
}

func sessionKeyboard(ownerID int64, st studio.Session) tgbotapi.InlineKeyboardMarkup {
	switch st.Menu {
	case "category":
		labels := make([]string, 0, len(studio.Categories()))
		selected := -1
		for i, c := range studio.Categories() {
			labels = append(labels, c.Name)
			if c.Name == st.Form.Category {
				selected = i
			}
		}
		return optionKeyboard(ownerID, "cat", labels, func(i int) bool { return i == selected })
	case "style":
		styles := studio.VisualStyles()
		return optionKeyboard(ownerID, "style", styles, func(i int) bool { return st.Form.HasVisualStyle(styles[i]) })
	case "light":
		lights := studio.LightingStyles()
		return optionKeyboard(ownerID, "light", lights, func(i int) bool { return lights[i] == st.Form.LightingStyle })
	case "aspect":
		ratios := studio.AspectRatios()
		return optionKeyboard(ownerID, "aspect", ratios, func(i int) bool { return ratios[i] == st.Form.AspectRatio })
	case "outputs":
		if len(st.Outputs) > 0 {
			return outputsKeyboard(ownerID, st)
		}
	}
	return mainKeyboard(ownerID, st)
}

func mainKeyboard(ownerID int64, st studio.Session) tgbotapi.InlineKeyboardMarkup {
	photoLabel := "📷 Photo"
	photoAction := "photo"
	if st.Form.ImageRef != "" {
		photoLabel = "🗑 Remove photo"
		photoAction = "photo_clear"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("✏️ Name", cb(ownerID, "name")),
			tgbotapi.NewInlineKeyboardButtonData("Category", cb(ownerID, "menu", "category")),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Style (%d)", len(st.Form.VisualStyles)), cb(ownerID, "menu", "style")),
			tgbotapi.NewInlineKeyboardButtonData("Lighting", cb(ownerID, "menu", "light")),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Aspect "+st.Form.AspectRatio, cb(ownerID, "menu", "aspect")),
			tgbotapi.NewInlineKeyboardButtonData(photoLabel, cb(ownerID, photoAction)),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Mascot: "+onOff(st.Form.MascotEnabled), cb(ownerID, "mascot")),
			tgbotapi.NewInlineKeyboardButtonData("Props: "+onOff(st.Form.PropsEnabled), cb(ownerID, "props")),
		},
	}

	generateRow := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("✨ Generate", cb(ownerID, "generate")),
	}
	if len(st.Outputs) > 0 {
		generateRow = append(generateRow, tgbotapi.NewInlineKeyboardButtonData("📄 Prompts", cb(ownerID, "menu", "outputs")))
	}
	rows = append(rows, generateRow, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("Reset", cb(ownerID, "reset")),
		tgbotapi.NewInlineKeyboardButtonData("Close", cb(ownerID, "close")),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func outputsKeyboard(ownerID int64, st studio.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, o := range st.Outputs {
		label := fmt.Sprintf("%s %s", o.ID, truncateLine(o.Title, 24))
		if o.ID == st.SelectedID {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, "out", o.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅ Back", cb(ownerID, "menu", "main")),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// optionKeyboard lays labels out two per row; callbacks carry the index so
// long labels stay within Telegram's 64 byte callback data limit.
func optionKeyboard(ownerID int64, action string, labels []string, selected func(int) bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, l := range labels {
		label := l
		if selected(i) {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, action, strconv.Itoa(i))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅ Back", cb(ownerID, "menu", "main")),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cb(ownerID int64, parts ...string) string {
	return fmt.Sprintf("%s:%d:%s", callbackPrefix, ownerID, strings.Join(parts, ":"))
}

func parseCallback(data string) (ownerID int64, action string, args []string, ok bool) {
	parts := strings.Split(strings.TrimSpace(data), ":")
	if len(parts) < 3 || parts[0] != callbackPrefix {
		return 0, "", nil, false
	}
	ownerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", nil, false
	}
	return ownerID, parts[2], parts[3:], true
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func truncateLine(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
