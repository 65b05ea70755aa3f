// Command storefront is the terminal client of the coffee shop: browse the
// catalog, fill a cart, log in, and for admins manage orders.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeMC777/cafe-altura/internal/cart"
	"github.com/MikeMC777/cafe-altura/internal/client"
	"github.com/MikeMC777/cafe-altura/internal/config"
	"github.com/MikeMC777/cafe-altura/internal/storefront"
)

func main() {
	logFile := flag.String("log", "", "write logs to this file")
	baseURL := flag.String("api", "", "API base URL (overrides API_BASE_URL)")
	flag.Parse()

	// the terminal belongs to the UI
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "storefront")
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := config.Load()
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}

	api := client.New(cfg.APIBaseURL)
	m := storefront.NewModel(api, cart.New(), storefront.NewSession())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
