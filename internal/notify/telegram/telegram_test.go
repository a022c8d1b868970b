package telegram_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fixnet/internal/notify/telegram"
)

const token = "123:test"

type fakeBotAPI struct {
	mu       sync.Mutex
	messages []map[string]string
	failSend bool
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/bot" + token + "/getMe":
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"FixNet","username":"fixnet_bot"}}`)
	case "/bot" + token + "/sendMessage":
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if f.failSend {
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
			return
		}

		f.mu.Lock()
		f.messages = append(f.messages, map[string]string{
			"chat_id": r.PostForm.Get("chat_id"),
			"text":    r.PostForm.Get("text"),
		})
		f.mu.Unlock()

		fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":673253772,"type":"private"},"text":"ok"}}`)
	default:
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}
}

func newSender(t *testing.T, api *fakeBotAPI, tok string) (*telegram.Sender, error) {
	t.Helper()

	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	return telegram.New(telegram.Config{
		Token:    tok,
		ChatID:   673253772,
		Endpoint: ts.URL + "/bot%s/%s",
		Rate:     100,
	})
}

func TestSender_Send(t *testing.T) {
	api := &fakeBotAPI{}

	s, err := newSender(t, api, token)
	require.NoError(t, err)

	require.NoError(t, s.Send(context.Background(), "🔧 Новая заявка FixNet"))

	require.Len(t, api.messages, 1)
	assert.Equal(t, "673253772", api.messages[0]["chat_id"])
	assert.Equal(t, "🔧 Новая заявка FixNet", api.messages[0]["text"])
}

func TestSender_SendTruncatesLongMessages(t *testing.T) {
	api := &fakeBotAPI{}

	s, err := newSender(t, api, token)
	require.NoError(t, err)

	require.NoError(t, s.Send(context.Background(), strings.Repeat("ж", 5000)))

	require.Len(t, api.messages, 1)
	text := api.messages[0]["text"]
	assert.Equal(t, 3901, utf8.RuneCountInString(text))
	assert.True(t, strings.HasSuffix(text, "…"))
}

func TestSender_SendAPIError(t *testing.T) {
	api := &fakeBotAPI{failSend: true}

	s, err := newSender(t, api, token)
	require.NoError(t, err)

	err = s.Send(context.Background(), "hello")
	assert.ErrorContains(t, err, "chat not found")
}

func TestSender_SendCancelled(t *testing.T) {
	api := &fakeBotAPI{}

	s, err := newSender(t, api, token)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Send(ctx, "hello"))
	assert.Empty(t, api.messages)
}

func TestSender_Check(t *testing.T) {
	s, err := newSender(t, &fakeBotAPI{}, token)
	require.NoError(t, err)
	assert.NoError(t, s.Check())

	s, err = newSender(t, &fakeBotAPI{}, "999:wrong")
	require.NoError(t, err)
	assert.Error(t, s.Check())
}

func TestNew_UnreachableEndpoint(t *testing.T) {
	s, err := telegram.New(telegram.Config{
		Token:    token,
		ChatID:   1,
		Endpoint: "http://127.0.0.1:1/bot%s/%s",
		Rate:     100,
	})
	require.NoError(t, err)

	err = s.Send(context.Background(), "hello")
	assert.ErrorContains(t, err, "sending telegram message")
}

func TestNew_EmptyToken(t *testing.T) {
	_, err := telegram.New(telegram.Config{ChatID: 1})
	assert.Error(t, err)
}
