/* main.go
 * The "main" method for running the bot. For details about the bot see `readme.md`
 * Usage: go run main.go -page="<page>" -wiki="<wiki>"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	api "bracket-bot/api/api"
	"bracket-bot/api/external"
	"bracket-bot/bot"
	"bracket-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()

	// Flags
	pagePtr := flag.String("page", "BLAST/Major/2025/Austin", "Liquipedia tournament page, e.g. BLAST/Major/2025/Austin")
	paramsPtr := flag.String("params", "", "Optional query parameters appended to wikitext requests")
	wikiPtr := flag.String("wiki", "counterstrike", "Liquipedia wiki the tournament lives on")
	dbNamePtr := flag.String("db", "bracketbot", "MongoDB database name")
	addrPtr := flag.String("addr", ":8080", "Listen address for the webhook and read endpoints")
	testPtr := flag.Bool("test", false, "Run against the beta bot instead of the production one")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	discordToken := selectDiscordToken(*testPtr)
	mongoURI := envOr("MONGO_PROD_URI", "mongodb://localhost:27017")

	fetcher := external.NewClient(os.Getenv("LIQUIPEDIADB_API_KEY"), *wikiPtr)
	apiPtr, err := api.NewAPI(*dbNamePtr, mongoURI, *pagePtr, *paramsPtr, fetcher)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Serve the edit webhook and read endpoints alongside the bot
	go func() {
		cfg := web.Config{Addr: *addrPtr, Wiki: *wikiPtr, API: apiPtr}
		if err := web.Start(cfg); err != nil {
			log.Printf("web server stopped: %v", err)
		}
	}()

	// Init bot and run
	discordBot, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := discordBot.Run(); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
