/* bot.go
 * Contains logic used for creating the bot. Requires a discord bot token and ApiPtr, both
 * of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"strings"

	"bracket-bot/api/api"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
	}, nil
}

// Helper function to check if a string starts with a given command word. A match requires
// the command to be followed by a space or the end of the message, so "$matches" does not
// trigger "$match"
func startsWith(inputString string, command string) bool {
	if !strings.HasPrefix(inputString, command) {
		return false
	}
	rest := inputString[len(command):]
	return rest == "" || strings.HasPrefix(rest, " ")
}
