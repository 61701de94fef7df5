/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/vttc-ratings/ladder"
	"github.com/mikeb26/vttc-ratings/logstore"
)

type VttcSubCommand string

var (
	errNoResults = errors.New("please attach the results file")
	errNoPlayers = errors.New("please attach the player list file")
)

const (
	VttcHelpCmd VttcSubCommand = "help"
	VttcCalcCmd VttcSubCommand = "calc"
	VttcLogsCmd VttcSubCommand = "logs"
)

const (
	// discord drops interactions not answered within 3 seconds
	fetchTimeout = 2500 * time.Millisecond

	defaultLogsLimit = 5
	maxLogsLimit     = 25
	logsTimeLayout   = "2006-01-02 15:04"
)

func (b *bot) vttcCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	subCmdHdlrs := map[VttcSubCommand]CmdHandler{
		VttcHelpCmd: vttcHelpCmdHandler,
		VttcCalcCmd: b.vttcCalcCmdHandler,
		VttcLogsCmd: b.vttcLogsCmdHandler,
	}

	data := inter.ApplicationCommandData()
	hdlr := vttcHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := subCmdHdlrs[VttcSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed help.md
var helpText string

func vttcHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

// calcArgs are the options given to /vttc calc.
type calcArgs struct {
	resultsURL string
	playersURL string
	player     string
	save       bool
	broadcast  bool
}

func parseCalcArgs(data discordgo.ApplicationCommandInteractionData) (calcArgs, error) {
	var args calcArgs
	if len(data.Options) == 0 {
		return args, errNoResults
	}

	attachmentURL := func(opt *discordgo.ApplicationCommandInteractionDataOption) string {
		id, _ := opt.Value.(string)
		if data.Resolved == nil {
			return ""
		}
		if att, ok := data.Resolved.Attachments[id]; ok && att != nil {
			return att.URL
		}
		return ""
	}

	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "results":
			args.resultsURL = attachmentURL(opt)
		case "players":
			args.playersURL = attachmentURL(opt)
		case "player":
			args.player, _ = opt.Value.(string)
		case "save":
			args.save = opt.BoolValue()
		case "broadcast":
			args.broadcast = opt.BoolValue()
		}
	}

	if args.resultsURL == "" {
		return args, errNoResults
	}
	if args.playersURL == "" {
		return args, errNoPlayers
	}
	return args, nil
}

func (b *bot) vttcCalcCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()

	args, err := parseCalcArgs(inter.ApplicationCommandData())
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error: %v", err)
		log.Printf("discordbot.calc: %v", resp.Data.Content)
		return resp
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	resultsText, playersText, err := b.fetcher.ReadBoth(fetchCtx,
		args.resultsURL, args.playersURL)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching attachments: %v", err)
		log.Printf("discordbot.calc: %v", resp.Data.Content)
		return resp
	}

	now := time.Now()
	calc, err := ladder.Calculate(resultsText, playersText, ladder.Options{
		Now:       now,
		Separator: b.cfg.Ladder.Separator,
	})
	if err != nil {
		var verr *ladder.ValidationError
		if errors.As(err, &verr) {
			resp.Data.Content = fmt.Sprintf("No ratings were changed.\n```\n%s\n```",
				truncateContentTo(verr.Error(), msgLimit-40))
		} else {
			resp.Data.Content = fmt.Sprintf("Error: %v", err)
		}
		log.Printf("discordbot.calc: %v", err)
		return resp
	}

	view := calc.Log.Filter(args.player)
	saved := ""
	if args.save {
		rec := logstore.NewRecord(calc, args.player, view.String(), now)
		id, err := b.store.Save(ctx, rec)
		if err != nil {
			log.Printf("discordbot.calc: failed to save log: %v", err)
			saved = fmt.Sprintf("Failed to save log: %v\n", err)
		} else {
			saved = fmt.Sprintf("Log saved successfully (id %v)\n", id)
		}
	}

	resp.Data.Content = calcContent(calc, view, saved)
	if args.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func discordHighlighter(name string) string {
	return "**" + name + "**"
}

// calcContent keeps the roster intact when it fits and gives the log
// whatever room remains.
func calcContent(calc *ladder.Calculation, view *ladder.CalcLog,
	saved string) string {

	var sb strings.Builder
	sb.WriteString(saved)
	sb.WriteString(fmt.Sprintf("**Updated player list** (%d players, %d matches)\n",
		len(calc.Players), len(calc.Results)))
	header := sb.String()

	const fence = "```"
	overhead := len([]rune(header)) + 2*len(fence) + 3
	roster := truncateContentTo(calc.Roster(), msgLimit-overhead)
	sb.WriteString(fmt.Sprintf("%s\n%s\n%s\n", fence, roster, fence))

	remaining := msgLimit - len([]rune(sb.String()))
	if remaining > 0 {
		sb.WriteString(truncateLines(view.Render(discordHighlighter),
			remaining))
	}

	return sb.String()
}

func (b *bot) vttcLogsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()

	data := inter.ApplicationCommandData()
	limit := int64(defaultLogsLimit)
	broadcast := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "limit" {
				limit = opt.IntValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	// enforce bounds
	if limit <= 0 {
		limit = defaultLogsLimit
	} else if limit > maxLogsLimit {
		limit = maxLogsLimit
	}

	recs, err := b.store.List(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching logs: %v", err)
		log.Printf("discordbot.logs: %v", resp.Data.Content)
		return resp
	}
	if len(recs) == 0 {
		resp.Data.Content = "No saved logs found."
		return resp
	}
	if int64(len(recs)) > limit {
		recs = recs[:limit]
	}

	var sb strings.Builder
	sb.WriteString("**Saved logs**\n")
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("- %v: %d players, %d matches, player %v (id `%v`)\n",
			rec.CreatedAt.Format(logsTimeLayout), rec.PlayerCount,
			rec.MatchCount, rec.SelectedPlayer, rec.ID))
	}
	resp.Data.Content = truncateContent(sb.String())
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

const msgLimit = 1988 // keep space for newlines and markdown

func truncateContent(s string) string {
	return truncateContentTo(s, msgLimit)
}

// truncateLines keeps as many whole lines of s as fit within limit runes so
// markdown emphasis is never split.
func truncateLines(s string, limit int) string {
	if len([]rune(s)) <= limit {
		return s
	}

	const ellipsis = "..."
	var sb strings.Builder
	used := len(ellipsis)
	for _, line := range strings.Split(s, "\n") {
		n := len([]rune(line)) + 1
		if used+n > limit {
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		used += n
	}
	sb.WriteString(ellipsis)

	return sb.String()
}

func truncateContentTo(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) > limit {
		s = fmt.Sprintf("%v...", string(runes[:limit]))
	}
	return s
}
