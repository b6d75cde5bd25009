package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go-brochure/internal/brochure"
	"go-brochure/internal/config"
	"go-brochure/internal/llm"
	"go-brochure/internal/urlutil"
	"go-brochure/internal/webpage"
)

func promptForURL(prompt string) string {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "\nNo input, exiting.")
			os.Exit(1)
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("Error: URL cannot be empty. Please try again.")
			fmt.Println()
			continue
		}
		if !urlutil.IsValid(input) {
			fmt.Println("Error: Invalid URL format. Please include a valid domain (e.g., example.com or www.example.com)")
			fmt.Println()
			continue
		}
		return urlutil.Normalize(input)
	}
}

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	url := promptForURL("Enter the URL to make a brochure for (e.g., www.example.com): ")
	fmt.Printf("\nFetching and making a brochure for: %s\n", url)

	fetcher := webpage.NewFetcher("", 5)
	client := llm.New(cfg.BaseURL, cfg.APIKey, cfg.Model)
	generator := brochure.NewGenerator(fetcher, client)

	result, err := generator.Generate(context.Background(), url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		fmt.Fprintln(os.Stderr, "Please check the URL and try again.")
		os.Exit(1)
	}

	fmt.Println("\nBrochure:")
	fmt.Println(result)
}
