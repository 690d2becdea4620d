// Command rephraser transforms text through a named action and an LLM
// provider. One invocation runs the whole pipeline: resolve action, render
// prompt, call provider, deliver output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"rephraser/internal/app"
	"rephraser/internal/config"
	"rephraser/internal/llm"
	"rephraser/internal/output"
)

const usageText = `Usage: rephraser <command> [arguments]

Commands:
  rephrase <action> <text>   Transform text using an action
  list-actions               List available actions
  config init                Create the config file with defaults
  config show                Print the current configuration
  config path                Print the config file path
  serve                      Expose the pipeline over HTTP

Flags for rephrase:
  -output <method>           Override the output method
                             (stdout, clipboard, notification, dialog)
`

// completeTimeout bounds one provider call from the CLI.
const completeTimeout = 90 * time.Second

func main() {
	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Fprint(os.Stderr, usageText)
		if len(os.Args) < 2 {
			os.Exit(2)
		}
		return
	}

	deps, err := app.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "rephrase":
		err = runRephrase(deps, os.Args[2:])
	case "list-actions":
		err = runListActions(deps, os.Stdout)
	case "config":
		err = runConfig(deps, os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(deps)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRephrase(deps app.Deps, args []string) error {
	fs := flag.NewFlagSet("rephrase", flag.ExitOnError)
	outputMethod := fs.String("output", "", "override the configured output method")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: rephraser rephrase [-output METHOD] ACTION TEXT")
	}
	actionName, text := fs.Arg(0), fs.Arg(1)

	method := deps.Config.Output.Method
	if *outputMethod != "" {
		method = *outputMethod
	}
	sink, err := app.NewSink(method)
	if err != nil {
		return err
	}
	client, err := app.NewLLMClient(deps.Config.LLM)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()

	return executeRephrase(ctx, deps, client, sink, actionName, text)
}

// executeRephrase runs one full pipeline pass: resolve, render, complete,
// deliver.
func executeRephrase(ctx context.Context, deps app.Deps, client llm.Client, sink output.Sink, actionName, text string) error {
	id := uuid.New()
	log := deps.Log.With("invocation_id", id, "action", actionName,
		"provider", client.ProviderName(), "model", client.ModelName())

	prompt, err := deps.Resolver.Resolve(actionName, text)
	if err != nil {
		return err
	}
	log.Debug("prompt rendered", "chars", len(prompt))

	start := time.Now()
	result, err := client.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	log.Info("completion received", "duration_ms", time.Since(start).Milliseconds(), "chars", len(result))

	return sink.Deliver(result)
}

func runListActions(deps app.Deps, w io.Writer) error {
	fmt.Fprintln(w, "Available actions:")
	fmt.Fprintln(w)
	for _, a := range deps.Resolver.List() {
		fmt.Fprintf(w, "  %s (%s)\n", a.Name, a.DisplayName)
	}
	return nil
}

func runConfig(deps app.Deps, args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rephraser config <init|show|path>")
	}
	switch args[0] {
	case "init":
		if err := deps.Manager.Init(); err != nil {
			return err
		}
		fmt.Fprintf(w, "Configuration initialized at: %s\n", deps.Manager.Path())
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Edit the file to customize your settings.")
		fmt.Fprintln(w, "Don't forget to set your API key environment variable!")
		return nil
	case "show":
		text, err := config.Encode(deps.Config)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Current configuration:")
		fmt.Fprintln(w)
		fmt.Fprint(w, text)
		return nil
	case "path":
		fmt.Fprintln(w, deps.Manager.Path())
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q", args[0])
	}
}
