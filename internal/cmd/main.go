package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mithesh14/ipl-auction/clients/auction_api_client"
	"github.com/Mithesh14/ipl-auction/internal/auction/channel"
	"github.com/Mithesh14/ipl-auction/internal/auction/dispatch"
	"github.com/Mithesh14/ipl-auction/internal/auction/lineup"
	"github.com/Mithesh14/ipl-auction/internal/auction/session"
	"github.com/Mithesh14/ipl-auction/internal/auction/state"
	"github.com/Mithesh14/ipl-auction/internal/auction/view"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	config, err := loadConfig(getEnv("AUCTION_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(config.LogLevel)

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("auction client exited with error")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func run(config *Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api, err := auction_api_client.New(config.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	boot, err := session.Bootstrap(ctx, api, log.Logger)
	if errors.Is(err, session.ErrUnauthorized) {
		return fmt.Errorf("no valid session: log in at %s/ first", config.Server.BaseURL)
	}
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	st := state.New(boot.User)
	st.SetCategories(boot.Categories, boot.CategoryInfo)

	isAdmin := boot.User.IsAdmin(config.Auction.AdminUsername)
	fmt.Printf("Welcome, %s (%s)\n", boot.User.TeamName, boot.User.Username)
	if isAdmin {
		fmt.Println("Auctioneer controls enabled.")
	}

	surface := newTerminalSurface(os.Stdout)
	clock := clockwork.NewRealClock()
	feed := view.NewFeed(view.FeedLimit)
	notifier := view.NewStatusNotifier(surface, clock, view.StatusTTL)

	var binder *channel.Binder
	reloader := session.NewCategoryReloader(api.Init, func(categories []string, info models.CategoryInfo) {
		st.SetCategories(categories, info)
		binder.RenderCategoryGrid()
	}, log.Logger)

	binder = channel.NewBinder(ctx, channel.BinderConfig{
		State:         st,
		Surface:       surface,
		Feed:          feed,
		Notifier:      notifier,
		TeamAPI:       api,
		Reloader:      reloader,
		Clock:         clock,
		AdminUsername: config.Auction.AdminUsername,
	})

	channelURL, err := config.channelURL()
	if err != nil {
		return err
	}
	client, err := channel.Dial(ctx, channel.DefaultClientConfig(channelURL), binder)
	if err != nil {
		return err
	}
	defer client.Close()

	poller := channel.NewPoller(st, client, clock, config.pollInterval())
	go poller.Run(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	dispatcher := dispatch.New(dispatch.Config{
		State:         st,
		Emitter:       client,
		Surface:       surface,
		Notifier:      notifier,
		API:           api,
		Policy:        lineup.DefaultPolicy(),
		AdminUsername: config.Auction.AdminUsername,
		Confirm:       confirmFunc(scanner),
		Quit:          cancel,
	})

	binder.RefreshDisplay()
	if err := dispatcher.RefreshTeam(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load team")
	}

	commandLoop(ctx, scanner, commandEnv{
		config:     config,
		api:        api,
		state:      st,
		dispatcher: dispatcher,
		isAdmin:    isAdmin,
		cancel:     cancel,
		done:       client.Done(),
	})
	return nil
}

func confirmFunc(scanner *bufio.Scanner) dispatch.ConfirmFunc {
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
}

type commandEnv struct {
	config     *Config
	api        *auction_api_client.AuctionAPIClient
	state      *state.ClientState
	dispatcher *dispatch.Dispatcher
	isAdmin    bool
	cancel     context.CancelFunc
	done       <-chan struct{}
}

func commandLoop(ctx context.Context, scanner *bufio.Scanner, env commandEnv) {
	printHelp(env.isAdmin)

	for {
		select {
		case <-ctx.Done():
			return
		case <-env.done:
			fmt.Println("Connection to auction closed.")
			return
		default:
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			env.cancel()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			printHelp(env.isAdmin)

		case "bid":
			env.dispatcher.PlaceBid(strings.Join(args, " "))

		case "start":
			if !requireAdmin(env.isAdmin) {
				continue
			}
			if len(args) < 2 {
				fmt.Println("usage: start <category> <set>")
				continue
			}
			set, err := strconv.Atoi(args[len(args)-1])
			if err != nil || (set != 1 && set != 2) {
				fmt.Println("set must be 1 or 2")
				continue
			}
			category := strings.Join(args[:len(args)-1], " ")
			env.dispatcher.StartPool(category, set)

		case "next":
			if requireAdmin(env.isAdmin) {
				env.dispatcher.NextPlayer()
			}

		case "sell":
			if requireAdmin(env.isAdmin) {
				env.dispatcher.SellPlayer()
			}

		case "team":
			if err := env.dispatcher.RefreshTeam(ctx); err != nil {
				fmt.Println("Error loading team")
				log.Error().Err(err).Msg("team refresh failed")
			}

		case "drop":
			if len(args) < 2 {
				fmt.Println("usage: drop <slot> <player name>")
				continue
			}
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("usage: drop <slot> <player name>")
				continue
			}
			player := strings.Join(args[1:], " ")
			if err := env.dispatcher.DropPlayer(ctx, player, slot); err != nil {
				fmt.Printf("Error updating playing XI: %v\n", err)
			}

		case "info":
			showPlayerInfo(ctx, env)

		case "logout":
			env.dispatcher.Logout(ctx)
			return

		case "quit", "exit":
			env.cancel()
			return

		default:
			fmt.Printf("unknown command %q (try help)\n", command)
		}
	}
}

func requireAdmin(isAdmin bool) bool {
	if !isAdmin {
		fmt.Println("auctioneer only")
	}
	return isAdmin
}

func showPlayerInfo(ctx context.Context, env commandEnv) {
	player := env.state.CurrentPlayer()
	if player == nil {
		fmt.Println("No player currently on auction")
		return
	}

	info, err := env.api.PlayerInfo(ctx, player.Name)
	if err != nil {
		fmt.Println("Error loading player information")
		log.Error().Err(err).Str("player", player.Name).Msg("player info fetch failed")
		return
	}

	fmt.Printf("\n%s\n", player.Name)
	fmt.Printf("Base Price: %s\n", view.FormatMoney(player.BasePrice))
	if info.Category != "" {
		fmt.Printf("Category: %s\n", info.Category)
	}
	if info.Description != "" {
		fmt.Println(info.Description)
	}
	if info.BirthInfo != "" {
		fmt.Printf("Birth: %s\n", info.BirthInfo)
	}
	if info.Nationality != "" {
		fmt.Printf("Nationality: %s\n", info.Nationality)
	}
	if info.ExternalLinks.Cricinfo != "" {
		fmt.Printf("ESPN Cricinfo: %s\n", info.ExternalLinks.Cricinfo)
	}
}

func printHelp(isAdmin bool) {
	fmt.Println("commands: bid <amount> | team | drop <slot> <player> | info | logout | quit")
	if isAdmin {
		fmt.Println("auctioneer: start <category> <set> | next | sell")
	}
}
