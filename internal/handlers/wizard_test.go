package handlers

import (
	"strconv"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"prompt-studio/internal/studio"
)

func itoa(n int) string { return strconv.Itoa(n) }

func TestCallbackRoundTrip(t *testing.T) {
	data := cb(42, "out", "p-3")
	owner, action, args, ok := parseCallback(data)
	if !ok || owner != 42 || action != "out" || len(args) != 1 || args[0] != "p-3" {
		t.Fatalf("parseCallback(%q) = %d %q %v %v", data, owner, action, args, ok)
	}

	for _, bad := range []string{"", "pv:1:menu", "ps:x:menu", "ps:1"} {
		if _, _, _, ok := parseCallback(bad); ok {
			t.Errorf("parseCallback(%q) accepted", bad)
		}
	}
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	st := studio.Session{Form: studio.DefaultForm()}
	st.Form.ProductName = "Ceramic Mug"
	st.Outputs = studio.Compose(st.Form)

	for _, menu := range []string{"main", "category", "style", "light", "aspect", "outputs"} {
		st.Menu = menu
		kb := sessionKeyboard(-1001234567890, st)
		for _, row := range kb.InlineKeyboard {
			for _, b := range row {
				if b.CallbackData == nil {
					t.Fatalf("%s: button %q without callback", menu, b.Text)
				}
				if n := len(*b.CallbackData); n > 64 {
					t.Fatalf("%s: callback %q is %d bytes", menu, *b.CallbackData, n)
				}
			}
		}
	}
}

func TestOptionKeyboardLayout(t *testing.T) {
	kb := optionKeyboard(1, "light", []string{"A", "B", "C"}, func(i int) bool { return i == 1 })
	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[0][1].Text; got != "✅ B" {
		t.Fatalf("selected label = %q", got)
	}
	if got := *kb.InlineKeyboard[1][0].CallbackData; got != "ps:1:light:2" {
		t.Fatalf("callback = %q", got)
	}
	if got := kb.InlineKeyboard[2][0].Text; !strings.Contains(got, "Back") {
		t.Fatalf("last row = %q", got)
	}
}

func TestSessionTextStates(t *testing.T) {
	st := studio.Session{Form: studio.DefaultForm(), Phase: studio.PhaseConfiguring}
	if got := sessionText(st); !strings.Contains(got, "Product: (not set)") || !strings.Contains(got, "Press Generate") {
		t.Fatalf("text = %q", got)
	}

	st.AwaitingName = true
	if got := sessionText(st); !strings.Contains(got, "Send the product name") {
		t.Fatalf("text = %q", got)
	}

	st.AwaitingName = false
	st.Phase = studio.PhaseError
	st.LastError = "Visualization failed."
	if got := sessionText(st); !strings.Contains(got, "❌ Visualization failed.") {
		t.Fatalf("text = %q", got)
	}

	st.Phase = studio.PhaseConfiguring
	st.Form.ProductName = "Mug"
	st.Outputs = studio.Compose(st.Form)
	st.SelectedID = "p-2"
	st.Menu = "outputs"
	got := sessionText(st)
	if !strings.Contains(got, "▶ p-2") || !strings.Contains(got, "p-6") {
		t.Fatalf("text = %q", got)
	}
}

func TestLargestPhotoSize(t *testing.T) {
	sizes := []tgbotapi.PhotoSize{
		{FileID: "s", Width: 90, Height: 90, FileSize: 1200},
		{FileID: "l", Width: 1280, Height: 960, FileSize: 88000},
		{FileID: "m", Width: 320, Height: 240, FileSize: 9000},
	}
	if got := largestPhotoSize(sizes).FileID; got != "l" {
		t.Fatalf("largest = %q", got)
	}

	noSizes := []tgbotapi.PhotoSize{
		{FileID: "s", Width: 90, Height: 90},
		{FileID: "l", Width: 800, Height: 800},
	}
	if got := largestPhotoSize(noSizes).FileID; got != "l" {
		t.Fatalf("largest without sizes = %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("  short  ", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncateLine("Ergonomic Office Chair", 9); got != "Ergonomic…" {
		t.Fatalf("got %q", got)
	}
}

func TestCommandsAreValidBotCommands(t *testing.T) {
	for _, c := range Commands() {
		if c.Command != strings.ToLower(c.Command) || len(c.Command) > 32 {
			t.Errorf("bad command %q", c.Command)
		}
		if len(c.Description) < 3 || len(c.Description) > 256 {
			t.Errorf("bad description for %q", c.Command)
		}
	}
}
