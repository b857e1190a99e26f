package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pilot/internal/chat"
	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive career advisor chat session",
	Long:  "Start an interactive terminal chat with the career advisor. Type messages and press enter; an empty line or Ctrl-D exits.",
	RunE:  runChat,
}

var (
	chatName   string
	chatAPIKey string
)

func init() {
	chatCmd.Flags().StringVar(&chatName, "name", "", "Name to address you by")
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(chatAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	advisor := chat.NewClient(client)
	profile := types.NewGenericProfile(chatName)
	var history []types.ChatMessage

	fmt.Println("Career advisor ready. Empty line to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			break
		}

		reply, err := advisor.Reply(ctx, profile, history, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			reply = chat.FallbackReply
		}
		fmt.Println(reply)

		history = append(history,
			types.ChatMessage{Sender: types.SenderUser, Text: chat.CleanOutgoing(text)},
			types.ChatMessage{Sender: types.SenderAI, Text: reply},
		)
	}
	return scanner.Err()
}
