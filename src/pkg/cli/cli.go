// Package cli implements the interactive command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"techtracker/local-app/src/pkg/event"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
	"techtracker/local-app/src/pkg/session"
)

// CLI represents the command-line interface
type CLI struct {
	session *session.Session
	rl      *readline.Instance
	stopCh  chan struct{}
	logger  *log.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(sess *session.Session, eventManager *event.EventManager, logger *log.Logger) (*CLI, error) {
	rl, err := readline.New("> ")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	c := &CLI{
		session: sess,
		rl:      rl,
		stopCh:  make(chan struct{}),
		logger:  logger,
	}

	// Celebrate reaching 100% the way the tracker always has.
	eventManager.Subscribe(event.RoadmapCompleted, func(e event.Event) {
		if roadmap, ok := e.Data.(*model.Roadmap); ok {
			fmt.Printf("\nAll topics in '%s' are completed!\n", roadmap.Title)
		}
	})

	return c, nil
}

// Run starts the CLI and handles user input
func (c *CLI) Run() error {
	fmt.Println("Welcome to Techtracker!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")

	for {
		select {
		case <-c.stopCh:
			return nil
		default:
		}

		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args := parseArgs(line)
		if args[0] == "help" {
			c.printHelp(args[1:])
			continue
		}

		cmd := parseCommand(args)
		result, err := c.session.CommandRun(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			c.logger.Info(context.Background(), "Command failed", log.Fields{"error": err})
		} else if result != nil {
			fmt.Printf("%v\n", result)
		}
	}
}

// Stop signals the CLI to stop its main loop
func (c *CLI) Stop() {
	close(c.stopCh)
	c.rl.Close()
}

// parseArgs splits input into arguments, honoring double quotes.
func parseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

// parseCommand turns an argument list into a model.Command
func parseCommand(args []string) model.Command {
	cmd := model.Command{
		Scope: strings.ToLower(args[0]),
	}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}
	return cmd
}

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> <operation> [arguments]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	fmt.Printf("Commands for %s:\n\n", scope)
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			fmt.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}
