/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/logstore"
	"github.com/mikeb26/vttc-ratings/source"
)

type TopLevelCommand string

const VttcCmd TopLevelCommand = "vttc"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

// bot serves discord interactions and the saved log api.
type bot struct {
	cfg     *internal.Config
	pubKey  ed25519.PublicKey
	session *discordgo.Session
	fetcher *source.Fetcher
	store   logstore.Store

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
}

func newBot(cfg *internal.Config, fetcher *source.Fetcher,
	store logstore.Store) (*bot, error) {

	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(cfg.Discord.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %v bytes; got %v",
			ed25519.PublicKeySize, len(pubKeyBytes))
	}

	b := &bot{
		cfg:     cfg,
		pubKey:  ed25519.PublicKey(pubKeyBytes),
		fetcher: fetcher,
		store:   store,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		VttcCmd: b.vttcCmdHandler,
	}
	if cfg.Discord.Token != "" {
		b.session, err = discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize discord client: %w", err)
		}
	}

	return b, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			b.topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v",
			inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func (b *bot) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	mountLogsAPI(mux, b.store)

	return mux
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hash := sha256.Sum256(cmdJson)
	hexString := hex.EncodeToString(hash[:])

	shouldUpdate := (hexString != strings.TrimSpace(lastCmdUpdateHash))
	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please update lastupdate.hash to %v",
			hexString)
	}

	return shouldUpdate
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func vttcCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(VttcCmd),
		Description: "Ladder rating commands; try /vttc help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(VttcHelpCmd),
				Description: "Show usage for vttc",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(VttcCalcCmd),
				Description: "Recompute ladder ratings from a night's results",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionAttachment,
						Name:        "results",
						Description: "Match results, one \"Name(bracket),games,Name(bracket),games\" per line",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionAttachment,
						Name:        "players",
						Description: "Player list, one \"id,Name(bracket),rating,memo\" per line",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "Only show log lines involving this player",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "save",
						Description: "Save the calculation log (default is false)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(VttcLogsCmd),
				Description: "List saved calculation logs",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "limit",
						Description: "Number of logs to list (default is 5)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
		},
	}
}

func (b *bot) registerSlashCommands() {
	if b.session == nil || b.cfg.Discord.AppID == "" {
		log.Printf("discordbot.reg: no token or app id; skipping registration")
		return
	}

	cmdDef := vttcCommand()
	appID := b.cfg.Discord.AppID
	if b.cfg.Discord.CommandID == "" {
		cmd, err := b.session.ApplicationCommandCreate(appID, "", cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(cmdDef) {
		cmd, err := b.session.ApplicationCommandEdit(appID, "",
			b.cfg.Discord.CommandID, cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	cfgFile := flag.String("config", internal.DefaultConfigFile, "config file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := internal.LoadConfig(*cfgFile)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	store, err := logstore.Open(ctx, cfg.LogStore)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	client := internal.NewCachedHttpClient(ctx, cfg.Source.CacheBucket,
		cfg.LogStore.Region, cfg.Source.MaxAge)
	b, err := newBot(cfg, source.New(client, cfg.Source.Selector), store)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.Discord.ListenAddr)

	if err := http.ListenAndServe(cfg.Discord.ListenAddr, b.routes()); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
