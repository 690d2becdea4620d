package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"rephraser/internal/app"
	"rephraser/internal/httputil"
	"rephraser/internal/llm"
)

type rephraseRequest struct {
	Action string `json:"action" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// runServe exposes the same pipeline over HTTP. The resolver and client are
// built once and shared; both are safe for concurrent requests.
func runServe(deps app.Deps) error {
	client, err := app.NewLLMClient(deps.Config.LLM)
	if err != nil {
		return err
	}

	r := httputil.NewRouter(deps.Log)
	r.Post("/api/rephrase", rephraseHandler(deps, client))
	r.Get("/api/actions", actionsHandler(deps))
	r.Get("/healthz", httputil.HealthHandler())

	addr := fmt.Sprintf(":%d", deps.Env.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("rephraser listening", "addr", addr,
			"provider", client.ProviderName(), "model", client.ModelName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func rephraseHandler(deps app.Deps, client llm.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rephraseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		id := uuid.New()
		log := deps.Log.With("request_id", id, "action", req.Action)

		prompt, err := deps.Resolver.Resolve(req.Action, req.Text)
		if err != nil {
			httputil.FailClassified(log, w, err)
			return
		}
		result, err := client.Complete(r.Context(), prompt)
		if err != nil {
			httputil.FailClassified(log, w, err)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"result":     result,
			"provider":   client.ProviderName(),
			"model":      client.ModelName(),
			"request_id": id.String(),
		})
	}
}

func actionsHandler(deps app.Deps) http.HandlerFunc {
	type actionView struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		actions := deps.Resolver.List()
		views := make([]actionView, 0, len(actions))
		for _, a := range actions {
			views = append(views, actionView{Name: a.Name, DisplayName: a.DisplayName})
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"actions": views})
	}
}
