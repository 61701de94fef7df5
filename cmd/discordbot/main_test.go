/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/source"
)

func (tb *testBot) signedRequest(t *testing.T, body string,
	sign bool) *http.Request {

	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/DiscordBot/Interaction",
		strings.NewReader(body))
	timestamp := "1717354200"
	sig := ed25519.Sign(tb.privKey, []byte(timestamp+body))
	if !sign {
		sig[0] ^= 0xff
	}
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func TestInteractionHandler(t *testing.T) {
	tb := newTestBot(t)
	mux := tb.routes()

	tests := []struct {
		name       string
		body       string
		sign       bool
		wantStatus int
		wantType   discordgo.InteractionResponseType
		wantText   string
	}{
		{name: "ping", body: `{"id":"1","type":1}`, sign: true,
			wantStatus: http.StatusOK,
			wantType:   discordgo.InteractionResponsePong},
		{name: "bad signature", body: `{"id":"1","type":1}`, sign: false,
			wantStatus: http.StatusUnauthorized},
		{name: "help", sign: true,
			body:       `{"id":"2","type":2,"data":{"id":"9","name":"vttc","options":[{"name":"help","type":1}]}}`,
			wantStatus: http.StatusOK,
			wantType:   discordgo.InteractionResponseChannelMessageWithSource,
			wantText:   "/vttc calc"},
		{name: "unknown command", sign: true,
			body:       `{"id":"3","type":2,"data":{"id":"9","name":"td"}}`,
			wantStatus: http.StatusOK,
			wantType:   discordgo.InteractionResponseChannelMessageWithSource,
			wantText:   "unknown command 'td'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, tb.signedRequest(t, tc.body, tc.sign))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %v; want %v", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			var resp discordgo.InteractionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Type != tc.wantType {
				t.Errorf("type = %v; want %v", resp.Type, tc.wantType)
			}
			if tc.wantText != "" && (resp.Data == nil ||
				!strings.Contains(resp.Data.Content, tc.wantText)) {
				t.Errorf("response missing %q: %+v", tc.wantText, resp.Data)
			}
		})
	}
}

func TestNewBotRejectsBadKey(t *testing.T) {
	for _, key := range []string{"", "zz", hex.EncodeToString([]byte("short"))} {
		cfg := &internal.Config{}
		cfg.Discord.PublicKey = key
		if _, err := newBot(cfg, source.New(nil, ""), nil); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestShouldUpdateCmdRegistration(t *testing.T) {
	// lastupdate.hash is committed empty until the command is first deployed
	if strings.TrimSpace(lastCmdUpdateHash) != "" {
		t.Skip("lastupdate.hash is set")
	}
	if !shouldUpdateCmdRegistration(vttcCommand()) {
		t.Errorf("expected an update with no recorded hash")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(vttcCommand()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"name":"players"`) {
		t.Errorf("command definition missing players option")
	}
}
