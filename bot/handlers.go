/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"bracket-bot/api/logic"
	"bracket-bot/api/matchgroup"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Bracket Bot v1.0\n")
	res.WriteString("`$groups`: lists the bracket groups on the configured tournament page with their ids\n")
	res.WriteString("`$bracket groupId`: shows a round by round summary of one group\n")
	res.WriteString("`$match groupId matchId`: shows the details of one match. Grand finals include the bracket reset series when one was played\n")
	res.WriteString("`$team name`: looks up a team by its template name. There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"The MongolZ\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// groupsHandler handles the $groups command with a DiscordSession interface
func (b *Bot) groupsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	lines, err := b.APIPtr.ListGroups()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the group list")
		return
	}

	var res strings.Builder
	res.WriteString("Groups on this page:\n")
	for _, line := range lines {
		res.WriteString(line + "\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// bracketHandler handles the $bracket command with a DiscordSession interface
func (b *Bot) bracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $bracket groupId")
		return
	}

	summary, err := b.APIPtr.BracketSummary(args[0])
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured getting group %s", args[0]))
		return
	}
	session.ChannelMessageSend(message.ChannelID, summary)
}

// matchHandler handles the $match command with a DiscordSession interface
func (b *Bot) matchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $match groupId matchId")
		return
	}

	summary, err := b.APIPtr.MatchSummary(args[0], args[1])
	if err != nil {
		if errors.Is(err, matchgroup.ErrMatchNotFound) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No match %s in group %s", args[1], args[0]))
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the match")
		return
	}
	session.ChannelMessageSend(message.ChannelID, summary)
}

// teamHandler handles the $team command with a DiscordSession interface
func (b *Bot) teamHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArgs(message.Content)
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $team name")
		return
	}

	template, err := b.APIPtr.GetTeamTemplate(args[0])
	if err != nil {
		if errors.Is(err, logic.ErrTemplateNotFound) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No team template named '%s'", args[0]))
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured looking up the team")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s (%s)\n", template.DisplayName, template.ShortName))
	if template.PageName != "" {
		res.WriteString(fmt.Sprintf("https://liquipedia.net/counterstrike/%s\n", template.PageName))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$groups"):
		b.groupsHandler(session, message)

	case startsWith(message.Content, "$bracket"):
		b.bracketHandler(session, message)

	case startsWith(message.Content, "$match"):
		b.matchHandler(session, message)

	case startsWith(message.Content, "$team"):
		b.teamHandler(session, message)
	}
}

// commandArgs splits a command message into its arguments, dropping the command word. We
// use splitter here instead of go's built in splitter because now we can have team names
// that contain spaces e.g. "Faze Clan" recognised as one argument not two
func commandArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, _ := spaceSplitter.Split(content)

	var args []string
	for i, part := range parts {
		if i == 0 {
			continue
		}
		part = strings.TrimSpace(part)
		part = strings.Trim(part, "\"")
		part = strings.Trim(part, "“”")
		if part != "" {
			args = append(args, part)
		}
	}
	return args
}
