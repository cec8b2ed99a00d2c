package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/cricketsense/internal/profile"
	"github.com/hrygo/cricketsense/plugin/ai"
	"github.com/hrygo/cricketsense/plugin/ai/agent"
	"github.com/hrygo/cricketsense/plugin/ai/agent/tools"
	"github.com/hrygo/cricketsense/plugin/ai/cache"
	"github.com/hrygo/cricketsense/plugin/ai/livescore"
	"github.com/hrygo/cricketsense/plugin/ai/websearch"
)

const version = "0.1.0"

// replTimeout bounds one full question/answer exchange, tool calls and
// model turns included.
const replTimeout = time.Minute

var rootCmd = &cobra.Command{
	Use:   "cricketsense",
	Short: "Cricket information assistant",
	Long:  "CricketSense answers cricket questions from live scoreboards and web search, with per-source response caching.",
	RunE:  runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print cricketsense version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "cricketsense version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `run mode: "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("model", "", "override the LLM model")
	rootCmd.PersistentFlags().Int("cache-capacity", 0, "override the response cache capacity")

	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("cache-capacity", rootCmd.PersistentFlags().Lookup("cache-capacity"))

	viper.SetEnvPrefix("cricketsense")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(_ *cobra.Command, _ []string) error {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Version: version,
	}
	p.FromEnv()
	if m := viper.GetString("model"); m != "" {
		p.LLMModel = m
	}
	if c := viper.GetInt("cache-capacity"); c > 0 {
		p.CacheCapacity = c
	}
	if err := p.Validate(); err != nil {
		return err
	}

	setupLogger(p)

	cfg := ai.NewConfigFromProfile(p)
	if err := cfg.Validate(); err != nil {
		return err
	}

	cacheService := cache.NewService(cache.ServiceConfig{Capacity: cfg.Cache.Capacity})
	defer cacheService.Close()

	scores := livescore.NewClient(livescore.Config{
		BaseURL: cfg.LiveScore.BaseURL,
		APIKey:  cfg.LiveScore.APIKey,
		Host:    cfg.LiveScore.Host,
	})
	web := websearch.NewClient(websearch.Config{
		APIKey:  cfg.Search.APIKey,
		BaseURL: cfg.Search.BaseURL,
		Depth:   cfg.Search.Depth,
	})

	registry := tools.NewToolRegistry()
	searchTool := tools.NewSearchTool(web, cacheService)
	for _, tool := range []tools.Tool{
		tools.NewDailyTool(scores, cacheService),
		tools.NewLiveTool(scores, cacheService),
		tools.NewSpecificTool(scores, cacheService, searchTool),
		searchTool,
	} {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	llm, err := ai.NewLLMService(&cfg.LLM)
	if err != nil {
		return err
	}

	parrot, err := agent.NewPitchParrot(llm, registry, agent.NewContextStore())
	if err != nil {
		return err
	}

	slog.Info("cricketsense started",
		"version", version,
		"mode", p.Mode,
		"model", cfg.LLM.Model,
		"cache_capacity", cfg.Cache.Capacity,
	)

	return repl(parrot)
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func repl(parrot *agent.PitchParrot) error {
	sessionID := agent.NewSessionID()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("CricketSense 🏏  ask about matches, scores and news.")
	fmt.Println(`Type "reset" to clear the conversation, "exit" to quit.`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "exit", "quit":
			parrot.Metrics().LogSummary()
			return nil
		case "reset":
			parrot.Contexts().Delete(sessionID)
			sessionID = agent.NewSessionID()
			fmt.Println("Conversation cleared.")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), replTimeout)
		err := parrot.ExecuteWithCallback(ctx, sessionID, input, printEvents)
		cancel()
		if err != nil {
			slog.Error("agent execution failed", "error", err)
		}
		fmt.Println()
	}

	return scanner.Err()
}

func printEvents(eventType string, eventData any) error {
	s, ok := eventData.(string)
	if !ok {
		return nil
	}

	switch eventType {
	case agent.EventTypeToolUse:
		fmt.Printf("… consulting %s\n", s)
	case agent.EventTypeAnswer:
		fmt.Println(s)
	}
	return nil
}
