// chatcli is a terminal client for the chat streaming endpoint, useful for
// poking at providers without a browser. It drives the same stream adapter
// the server relay uses and prints text deltas as they arrive.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"capitolview/internal/model"
	"capitolview/internal/stream"
	"capitolview/internal/utils"
	"capitolview/pkg/logger"
)

var (
	endpoint = flag.String("endpoint", "http://localhost:8090/v1/chat/stream", "Chat streaming endpoint URL")
	provider = flag.String("provider", "openai", "Provider name to request")
	apiKey   = flag.String("api-key", os.Getenv("CHAT_API_KEY"), "API key (defaults to CHAT_API_KEY)")
)

func main() {
	flag.Parse()
	logger.Init("warn", "text")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nStopping...")
		cancel()
	}()

	client := stream.NewClient(*endpoint, *apiKey, utils.NewHTTPClient(0))

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println(boldGreen("Capitol chat"))
	fmt.Printf("Provider: %s\n", boldCyan(*provider))
	fmt.Println("Type your message and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	var history []stream.HistoryMessage
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}

		history = append(history, stream.HistoryMessage{Role: model.RoleUser, Content: input})

		fmt.Print(boldCyan("Assistant: "))
		printed := 0
		toolsSeen := map[string]bool{}

		err := client.Stream(ctx, stream.Request{Provider: *provider, Messages: history}, func(snap stream.Snapshot) {
			// Snapshots are full-state; print only the new text suffix.
			if len(snap.Text) > printed {
				fmt.Print(snap.Text[printed:])
				printed = len(snap.Text)
			}
			for _, part := range snap.Parts {
				if part.Type != model.PartToolCall || toolsSeen[part.ToolCall.ID] {
					continue
				}
				toolsSeen[part.ToolCall.ID] = true
				fmt.Printf("\n%s\n", dim("[tool: "+part.ToolCall.Name+"]"))
			}
			if snap.Done {
				history = append(history, stream.HistoryMessage{Role: model.RoleAssistant, Content: snap.Text})
			}
		})
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			// Drop the failed turn so a resubmit starts clean.
			history = history[:len(history)-1]
		}
		fmt.Println()
	}
}
