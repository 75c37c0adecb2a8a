/* handlers_test.go
 * Contains unit tests for the bot command handlers using MockDiscordSession
 */

package bot

import (
	"testing"

	"bracket-bot/api/api"
	"bracket-bot/api/external"
	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot() (*Bot, *api.MockStore) {
	mock := api.NewMockStore()
	return &Bot{BotToken: "token", APIPtr: &api.API{Store: mock}}, mock
}

func userMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ChannelID: "chan",
			Content:   content,
			Author:    &discordgo.User{ID: "user-1", Username: "tester"},
		},
	}
}

func seedBracket(mock *api.MockStore) {
	bracketData := func(extra map[string]interface{}) map[string]interface{} {
		data := map[string]interface{}{"type": "bracket"}
		for k, v := range extra {
			data[k] = v
		}
		return data
	}
	mock.Records["grpA"] = []matchgroup.Record{
		{
			"matchid":           "R02-M001",
			"match2bracketdata": bracketData(map[string]interface{}{"childmatchids": []interface{}{"R01-M001", "R01-M002"}}),
			"match2opponents": []interface{}{
				map[string]interface{}{"type": "team", "name": "Alpha", "score": float64(2)},
				map[string]interface{}{"type": "team", "name": "Beta", "score": float64(1)},
			},
		},
		{"matchid": "R01-M001", "match2bracketdata": bracketData(nil)},
		{"matchid": "R01-M002", "match2bracketdata": bracketData(nil)},
	}
	mock.GroupRefs = []external.GroupRef{{ID: "grpA", Type: "bracket"}}
}

// TestHelpCommand tests the $help response
func TestHelpCommand(t *testing.T) {
	bot, _ := newTestBot()
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$help"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "$bracket groupId")
	assert.Contains(t, session.GetLastMessage().Content, "$team name")
}

// TestGroupsCommand tests the $groups listing
func TestGroupsCommand(t *testing.T) {
	bot, mock := newTestBot()
	seedBracket(mock)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$groups"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "grpA (bracket)")
}

// TestBracketCommand tests the $bracket summary response
func TestBracketCommand(t *testing.T) {
	bot, mock := newTestBot()
	seedBracket(mock)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$bracket grpA"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Bracket grpA:")
	assert.Contains(t, content, "Round 2:")
	assert.Contains(t, content, "Alpha")
}

// TestBracketCommand_Usage tests the argument validation
func TestBracketCommand_Usage(t *testing.T) {
	bot, _ := newTestBot()
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$bracket"), "bot-id")

	assert.Equal(t, "Usage: $bracket groupId", session.GetLastMessage().Content)
}

// TestMatchCommand tests the $match detail response
func TestMatchCommand(t *testing.T) {
	bot, mock := newTestBot()
	seedBracket(mock)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$match grpA R02-M001"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "Match R02-M001")
}

// TestMatchCommand_NotFound tests the unknown match response
func TestMatchCommand_NotFound(t *testing.T) {
	bot, mock := newTestBot()
	seedBracket(mock)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$match grpA R09-M001"), "bot-id")

	assert.Equal(t, "No match R09-M001 in group grpA", session.GetLastMessage().Content)
}

// TestTeamCommand tests the $team lookup with a stored template
func TestTeamCommand(t *testing.T) {
	bot, mock := newTestBot()
	mock.Templates["navi"] = &shared.TeamTemplate{DisplayName: "Natus Vincere", ShortName: "NAVI", PageName: "Natus_Vincere"}
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$team navi"), "bot-id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Natus Vincere (NAVI)")
	assert.Contains(t, content, "Natus_Vincere")
}

// TestTeamCommand_TBD tests the built-in placeholder lookup
func TestTeamCommand_TBD(t *testing.T) {
	bot, _ := newTestBot()
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$team tbd"), "bot-id")

	assert.Contains(t, session.GetLastMessage().Content, "To Be Decided (TBD)")
}

// TestTeamCommand_Miss tests the unknown template response
func TestTeamCommand_Miss(t *testing.T) {
	bot, _ := newTestBot()
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, userMessage("$team unknown"), "bot-id")

	assert.Equal(t, "No team template named 'unknown'", session.GetLastMessage().Content)
}

// TestSelfMessagesIgnored tests that the bot never answers itself
func TestSelfMessagesIgnored(t *testing.T) {
	bot, _ := newTestBot()
	session := NewMockDiscordSession()

	message := userMessage("$help")
	message.Author.ID = "bot-id"
	bot.newMessageHandler(session, message, "bot-id")

	assert.Empty(t, session.SentMessages)
}

// TestStartsWith tests the command word matching, including the prefix collision between
// $match and longer words
func TestStartsWith(t *testing.T) {
	assert.True(t, startsWith("$match grpA 0001", "$match"))
	assert.True(t, startsWith("$help", "$help"))
	assert.False(t, startsWith("$matches grpA", "$match"))
	assert.False(t, startsWith("say $help", "$help"))
}

// TestCommandArgs tests quoted argument splitting
func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"grpA", "R01-M001"}, commandArgs("$match grpA R01-M001"))
	assert.Equal(t, []string{"The MongolZ"}, commandArgs(`$team "The MongolZ"`))
	assert.Nil(t, commandArgs("$groups"))
}
