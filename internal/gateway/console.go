package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rahul/drishti/internal/agent"
)

// Runner answers one query end to end.
type Runner interface {
	Answer(ctx context.Context, query string) (string, error)
}

// ExampleQueries demonstrate the agent: numbered in the interactive
// session, run back-to-back by the --example flag.
var ExampleQueries = []string{
	"Compare the printers and speakers categories. Which one has better customer satisfaction and where should we focus our efforts?",
	"Analyze customer complaints for products with ratings below 4.0. What are the main issues and how can we address them?",
	"Find the top 5 products by rating and analyze what makes them successful.",
}

// Console is the interactive gateway: a read-answer loop on stdin.
type Console struct {
	Runner Runner
	In     io.Reader
	Out    io.Writer
}

func NewConsole(r Runner) *Console {
	return &Console{Runner: r, In: os.Stdin, Out: os.Stdout}
}

// Start runs the interactive loop until EOF, "quit" or context
// cancellation.
func (c *Console) Start(ctx context.Context) error {
	fmt.Fprintln(c.Out, "Ask a question about the product and review data.")
	fmt.Fprintln(c.Out, "Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(c.In)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(c.Out, "\nYour query: ")
		if !scanner.Scan() {
			fmt.Fprintln(c.Out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(c.Out, "Goodbye.")
			return nil
		case "help":
			c.printHelp()
			continue
		case "graph":
			fmt.Fprintln(c.Out, agent.DescribeWorkflow())
			continue
		}

		query := line
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(ExampleQueries) {
				fmt.Fprintf(c.Out, "Pick an example between 1 and %d.\n", len(ExampleQueries))
				continue
			}
			query = ExampleQueries[n-1]
			fmt.Fprintf(c.Out, "Running example: %s\n", query)
		}

		answer, err := c.Runner.Answer(ctx, query)
		if err != nil {
			fmt.Fprintf(c.Out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(c.Out, "\n"+answer)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.Out, "Commands:")
	fmt.Fprintln(c.Out, "  help   show this message")
	fmt.Fprintln(c.Out, "  graph  print the workflow graph")
	fmt.Fprintln(c.Out, "  quit   exit the session")
	fmt.Fprintln(c.Out, "Example queries (enter the number to run one):")
	for i, q := range ExampleQueries {
		fmt.Fprintf(c.Out, "  %d. %s\n", i+1, q)
	}
}
