package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"prompt-studio/internal/mediagroup"
	"prompt-studio/internal/preview"
	"prompt-studio/internal/studio"
)

type answer struct {
	text  string
	alert bool
}

type fakeMessenger struct {
	mu        sync.Mutex
	texts     []string
	keyboards []string
	edits     int
	answers   []answer
	photos    []string
	files     map[string]preview.ImageInput
	nextMsgID int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{files: map[string]preview.ImageInput{}, nextMsgID: 100}
}

func (f *fakeMessenger) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) SendTextWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyboards = append(f.keyboards, text)
	f.nextMsgID++
	return f.nextMsgID, nil
}

func (f *fakeMessenger) EditTextWithKeyboard(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyboards = append(f.keyboards, text)
	f.edits++
	return nil
}

func (f *fakeMessenger) AnswerCallback(callbackID, text string, alert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, answer{text: text, alert: alert})
	return nil
}

func (f *fakeMessenger) SendPhoto(chatID int64, img preview.Image, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, caption)
	return nil
}

func (f *fakeMessenger) DownloadFile(ctx context.Context, fileID string) (preview.ImageInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.files[fileID]
	if !ok {
		return preview.ImageInput{}, errors.New("file not found")
	}
	return img, nil
}

func (f *fakeMessenger) SendTyping(chatID int64)         {}
func (f *fakeMessenger) SendUploadingPhoto(chatID int64) {}

func (f *fakeMessenger) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

func (f *fakeMessenger) lastKeyboard() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.keyboards) == 0 {
		return ""
	}
	return f.keyboards[len(f.keyboards)-1]
}

const (
	testChat int64 = 10
	testUser int64 = 20
)

func newTestHandler(gen preview.Generator) (*Handler, *fakeMessenger) {
	tg := newFakeMessenger()
	var svc *preview.Service
	if gen != nil {
		svc = preview.NewService(preview.Options{Generator: gen, MaxConcurrent: 2})
	}
	return New(Options{Telegram: tg, Preview: svc, Sessions: studio.NewStore()}), tg
}

func command(text string) tgbotapi.Update {
	n := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		n = i
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUser},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}},
	}}
}

func textMessage(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: testUser},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
	}}
}

func callback(fromID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: fromID},
		Message: &tgbotapi.Message{
			MessageID: 55,
			Chat:      &tgbotapi.Chat{ID: testChat},
		},
		Data: data,
	}}
}

func mustHandle(t *testing.T, h *Handler, u tgbotapi.Update) {
	t.Helper()
	if err := h.HandleUpdate(context.Background(), u); err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
}

func TestNewCommandParsesArgs(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, command(`/new "Silk Scarf" cat=beauty ar=9:16`))

	st := h.sessions.Get(testChat, testUser)
	if st.Form.ProductName != "Silk Scarf" || st.Form.Category != "Beauty & Personal Care" || st.Form.AspectRatio != "9:16" {
		t.Fatalf("form = %+v", st.Form)
	}
	if st.AwaitingName {
		t.Fatal("AwaitingName set although a name was given")
	}
	if !strings.Contains(tg.lastKeyboard(), "Product: Silk Scarf") {
		t.Fatalf("ui = %q", tg.lastKeyboard())
	}
	if st.MessageID == 0 {
		t.Fatal("ui message id not stored")
	}
}

func TestNewCommandReportsBadArgs(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, command("/new Mug style=Baroque"))

	if !strings.Contains(tg.lastText(), "unknown visual style") {
		t.Fatalf("reply = %q", tg.lastText())
	}
	if got := h.sessions.Get(testChat, testUser).Form.ProductName; got != "" {
		t.Fatalf("form changed on error: %q", got)
	}
}

func TestGenerateRejectsEmptyName(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, command("/generate"))

	if !strings.Contains(tg.lastText(), emptyNameMessage) {
		t.Fatalf("reply = %q", tg.lastText())
	}
	st := h.sessions.Get(testChat, testUser)
	if len(st.Outputs) != 0 || !st.AwaitingName {
		t.Fatalf("outputs=%d awaiting=%v", len(st.Outputs), st.AwaitingName)
	}
}

func TestGenerateButtonRejectsEmptyNameWithAlert(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, callback(testUser, cb(testUser, "generate")))

	if len(tg.answers) != 1 || !tg.answers[0].alert || tg.answers[0].text != emptyNameMessage {
		t.Fatalf("answers = %+v", tg.answers)
	}
}

func TestTextSetsNameWhenAwaiting(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, textMessage("Ceramic Mug"))
	if !strings.Contains(tg.lastText(), "/new") {
		t.Fatalf("reply = %q", tg.lastText())
	}

	mustHandle(t, h, command("/name"))
	mustHandle(t, h, textMessage("  Ceramic Mug "))

	st := h.sessions.Get(testChat, testUser)
	if st.Form.ProductName != "Ceramic Mug" || st.AwaitingName {
		t.Fatalf("name=%q awaiting=%v", st.Form.ProductName, st.AwaitingName)
	}
}

func TestGenerateComposesAndPreviewsFirstOutput(t *testing.T) {
	var prompts []string
	var mu sync.Mutex
	gen := preview.GeneratorFunc(func(ctx context.Context, req preview.Request) (preview.Image, error) {
		mu.Lock()
		prompts = append(prompts, req.Prompt)
		mu.Unlock()
		return preview.Image{Data: []byte("png"), MimeType: "image/png"}, nil
	})
	h, tg := newTestHandler(gen)

	mustHandle(t, h, command("/new Ceramic Mug"))
	mustHandle(t, h, command("/generate"))

	st := h.sessions.Get(testChat, testUser)
	if len(st.Outputs) != studio.SlotCount || st.SelectedID != "p-1" || st.Menu != "outputs" {
		t.Fatalf("outputs=%d selected=%q menu=%q", len(st.Outputs), st.SelectedID, st.Menu)
	}
	if st.Phase != studio.PhaseConfiguring {
		t.Fatalf("Phase = %q", st.Phase)
	}
	if len(tg.photos) != 1 || !strings.Contains(tg.photos[0], "(p-1)") {
		t.Fatalf("photos = %v", tg.photos)
	}
	if len(prompts) != 1 || !strings.Contains(prompts[0], "Ceramic Mug") {
		t.Fatalf("prompts = %v", prompts)
	}
}

func TestSelectOutputSendsFullPrompt(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, command("/new Ceramic Mug"))
	mustHandle(t, h, command("/generate"))
	mustHandle(t, h, callback(testUser, cb(testUser, "out", "p-3")))

	st := h.sessions.Get(testChat, testUser)
	if st.SelectedID != "p-3" {
		t.Fatalf("SelectedID = %q", st.SelectedID)
	}
	if !strings.Contains(tg.lastText(), st.Outputs[2].FullPrompt) {
		t.Fatal("full prompt of p-3 not sent")
	}
	if len(tg.photos) != 0 {
		t.Fatal("preview sent without a backend")
	}
}

func TestSelectStaleOutputAsksToRegenerate(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, command("/new Ceramic Mug"))
	mustHandle(t, h, callback(testUser, cb(testUser, "out", "p-2")))

	if len(tg.answers) != 1 || !tg.answers[0].alert {
		t.Fatalf("answers = %+v", tg.answers)
	}
}

func TestPreviewFailureSetsErrorPhase(t *testing.T) {
	gen := preview.GeneratorFunc(func(ctx context.Context, req preview.Request) (preview.Image, error) {
		return preview.Image{}, nil
	})
	h, tg := newTestHandler(gen)

	mustHandle(t, h, command("/new Ceramic Mug"))
	mustHandle(t, h, command("/generate"))

	st := h.sessions.Get(testChat, testUser)
	if st.Phase != studio.PhaseError || st.LastError == "" {
		t.Fatalf("phase=%q err=%q", st.Phase, st.LastError)
	}
	if !strings.Contains(tg.lastText(), "Visualization failed") {
		t.Fatalf("reply = %q", tg.lastText())
	}
	if len(st.Outputs) != studio.SlotCount {
		t.Fatal("outputs lost after a preview failure")
	}
}

func TestCallbackFromOtherUserIsRejected(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, callback(999, cb(testUser, "mascot")))

	if len(tg.answers) != 1 || !tg.answers[0].alert {
		t.Fatalf("answers = %+v", tg.answers)
	}
	if !h.sessions.Get(testChat, testUser).Form.MascotEnabled {
		t.Fatal("foreign press changed the session")
	}
}

func TestCallbackTogglesAndEditsInPlace(t *testing.T) {
	h, tg := newTestHandler(nil)

	mustHandle(t, h, callback(testUser, cb(testUser, "props")))

	st := h.sessions.Get(testChat, testUser)
	if st.Form.PropsEnabled {
		t.Fatal("props not toggled")
	}
	if st.MessageID != 55 || tg.edits != 1 {
		t.Fatalf("MessageID=%d edits=%d", st.MessageID, tg.edits)
	}
}

func TestApplyActionCategoryRefreshesDefaults(t *testing.T) {
	st := studio.Session{Form: studio.DefaultForm(), Menu: "category"}
	st.Form.ProductName = "Yoga Mat"
	st.Outputs = studio.Compose(st.Form)

	idx := -1
	for i, c := range studio.Categories() {
		if c.Name == "Sports & Fitness" {
			idx = i
		}
	}
	applyAction(&st, "cat", []string{itoa(idx)})

	if st.Form.Category != "Sports & Fitness" || !st.Form.PowderEnabled {
		t.Fatalf("form = %+v", st.Form)
	}
	if st.Outputs != nil || st.Menu != "main" {
		t.Fatalf("outputs=%v menu=%q", st.Outputs, st.Menu)
	}

	applyAction(&st, "cat", []string{"999"})
	if st.Form.Category != "Sports & Fitness" {
		t.Fatal("out of range index applied")
	}
}

func TestApplyActionStyleToggle(t *testing.T) {
	st := studio.Session{Form: studio.DefaultForm()}
	styles := studio.VisualStyles()

	applyAction(&st, "style", []string{"0"})
	if !st.Form.HasVisualStyle(styles[0]) || st.Menu != "style" {
		t.Fatalf("styles=%v menu=%q", st.Form.VisualStyles, st.Menu)
	}
	applyAction(&st, "style", []string{"0"})
	if st.Form.HasVisualStyle(styles[0]) {
		t.Fatal("second press did not remove the style")
	}
}

func TestPhotoBecomesReference(t *testing.T) {
	h, tg := newTestHandler(nil)
	tg.files["big"] = preview.ImageInput{Data: []byte("0123456789"), MimeType: "image/jpeg"}

	u := textMessage("")
	u.Message.Caption = "Travel Mug cat=home"
	u.Message.Photo = []tgbotapi.PhotoSize{
		{FileID: "small", Width: 90, Height: 90, FileSize: 1000},
		{FileID: "big", Width: 1280, Height: 1280, FileSize: 90000},
	}
	mustHandle(t, h, u)

	st := h.sessions.Get(testChat, testUser)
	if st.Form.ImageRef != preview.EncodeDataURL([]byte("0123456789"), "image/jpeg") {
		t.Fatalf("ImageRef = %q", st.Form.ImageRef)
	}
	if st.Form.ProductName != "Travel Mug" || st.Form.Category != "Home, Kitchen & Dining" {
		t.Fatalf("caption not applied: %+v", st.Form)
	}
}

func TestAlbumKeepsLargestDownload(t *testing.T) {
	h, tg := newTestHandler(nil)
	tg.files["a"] = preview.ImageInput{Data: []byte("aa"), MimeType: "image/jpeg"}
	tg.files["b"] = preview.ImageInput{Data: []byte("bbbbbb"), MimeType: "image/png"}
	tg.files["c"] = preview.ImageInput{Data: []byte("ccc"), MimeType: "image/jpeg"}

	h.HandleMediaGroup(context.Background(), mediagroup.Group{
		ChatID: testChat,
		UserID: testUser,
		Photos: []mediagroup.Photo{{FileID: "a"}, {FileID: "b"}, {FileID: "c"}},
	})

	st := h.sessions.Get(testChat, testUser)
	if st.Form.ImageRef != preview.EncodeDataURL([]byte("bbbbbb"), "image/png") {
		t.Fatalf("ImageRef = %q", st.Form.ImageRef)
	}
	if !strings.Contains(strings.Join(tg.texts, "\n"), "largest of 3") {
		t.Fatalf("texts = %v", tg.texts)
	}
}

func TestAlbumDownloadFailureKeepsForm(t *testing.T) {
	h, tg := newTestHandler(nil)
	tg.files["a"] = preview.ImageInput{Data: []byte("aa"), MimeType: "image/jpeg"}

	h.HandleMediaGroup(context.Background(), mediagroup.Group{
		ChatID: testChat,
		UserID: testUser,
		Photos: []mediagroup.Photo{{FileID: "a"}, {FileID: "missing"}},
	})

	if h.sessions.Get(testChat, testUser).Form.ImageRef != "" {
		t.Fatal("reference set despite failed download")
	}
	if !strings.Contains(tg.lastText(), "Could not download") {
		t.Fatalf("reply = %q", tg.lastText())
	}
}

func TestResetClearsProject(t *testing.T) {
	h, _ := newTestHandler(preview.GeneratorFunc(func(ctx context.Context, req preview.Request) (preview.Image, error) {
		return preview.Image{Data: []byte("x")}, nil
	}))

	mustHandle(t, h, command("/new Ceramic Mug"))
	mustHandle(t, h, command("/reset"))

	st := h.sessions.Get(testChat, testUser)
	if st.Form.ProductName != "" || st.MessageID == 0 {
		t.Fatalf("name=%q msg=%d", st.Form.ProductName, st.MessageID)
	}
}

func TestUnknownCommand(t *testing.T) {
	h, tg := newTestHandler(nil)
	mustHandle(t, h, command("/dance"))
	if !strings.Contains(tg.lastText(), "Unknown command") {
		t.Fatalf("reply = %q", tg.lastText())
	}
}
