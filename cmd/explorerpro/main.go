package main

import (
	"fmt"
	"os"

	"github.com/benju66/ExplorerPro-sub010/internal/app"
	tea "github.com/charmbracelet/bubbletea"
)

var version = "dev"

func main() {
	app.Version = version

	var dir string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v", "--version":
			fmt.Println("explorerpro", version)
			return
		default:
			dir = arg
		}
	}

	if os.Getenv("EXPLORERPRO_DEBUG") != "" {
		f, err := tea.LogToFile("explorerpro-debug.log", "debug")
		if err == nil {
			defer f.Close()
		}
	}

	p := tea.NewProgram(
		app.New(dir),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
