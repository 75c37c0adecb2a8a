/* utils.go
 * Environment helpers for the startup wiring in main.go
 */

package main

import "os"

// envOr returns the value of the named environment variable, or fallback when it is unset
// or empty
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// selectDiscordToken picks the bot token for this run: the beta token when running against
// the test bot, the production one otherwise
func selectDiscordToken(useTestBot bool) string {
	if useTestBot {
		return os.Getenv("DISCORD_BETA_TOKEN")
	}
	return os.Getenv("DISCORD_PROD_TOKEN")
}
