package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
)

func newChatCmd() *cobra.Command {
	var indexPath string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat with the recommendation engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := buildRouter(indexPath)
			if err != nil {
				return err
			}

			sessionID := session.EnsureID("")
			fmt.Println("輸入想聊的主題，exit 離開。")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if query == "exit" || query == "quit" {
					break
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " 思考中..."
				sp.Start()
				resp := router.Handle(cmd.Context(), sessionID, query, "")
				sp.Stop()

				printResponse(resp)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "saved vector index file")
	return cmd
}

func printResponse(resp chat.Response) {
	if outputJSON {
		json.NewEncoder(os.Stdout).Encode(resp)
		return
	}

	switch resp.Type {
	case chat.TypeRecommendation:
		if resp.Message != "" {
			color.Yellow(resp.Message)
		}
		for i, item := range resp.Results {
			color.New(color.FgCyan, color.Bold).Printf("%d. %s / %s", resp.Offset+i+1, item.SectionTitle, item.Title)
			fmt.Printf("  (%.1f)\n", item.Score)
			if item.Type == "article" {
				fmt.Printf("   %s\n   %s\n", item.Snippet, item.ArticleURL)
			} else {
				fmt.Printf("   %s\n   %s\n", item.Hint, item.YoutubeURL)
			}
		}
		if resp.HasMore {
			color.New(color.Faint).Println("（輸入「更多」看下一頁）")
		}
	case chat.TypePoints:
		if resp.Message != "" {
			color.Yellow(resp.Message)
		}
		for _, p := range resp.Points {
			color.New(color.FgGreen).Printf("• %s", p.Title)
			fmt.Printf("  %s  %s  (%.2f km)\n", p.Address, p.Tel, p.DistanceKm)
		}
	case chat.TypeAdvice:
		color.New(color.FgMagenta, color.Bold).Println(resp.Advice.Title)
		fmt.Println(resp.Advice.Summary)
		for _, step := range resp.Advice.Steps {
			fmt.Printf(" - %s\n", step)
		}
	default:
		fmt.Println(resp.Message)
	}
}
