package around

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/5hraddha/around/internal/around/app"
	"github.com/5hraddha/around/internal/around/gateway"
	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/around/storage/sqlite"
	"github.com/5hraddha/around/internal/around/store"
	entrypoint "github.com/5hraddha/around/internal/platform/cmd"
	"github.com/5hraddha/around/internal/platform/logging"
	"github.com/5hraddha/around/internal/platform/requestctx"
)

// Run starts the client, restores the session, loads content and executes
// cfg.Command. Command output goes to out and logs go to errOut.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	log, err := logging.NewWithWriter(errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	correlationID := uuid.NewString()
	log = log.WithFields(logrus.Fields{"service": entrypoint.ServiceAround, "correlation_id": correlationID})
	ctx = requestctx.WithCorrelationID(ctx, correlationID)

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceAround, entrypoint.RunOptions{Logger: log}, func(ctx context.Context) error {
		command, ok := lookupCommand(cfg.Command)
		if !ok {
			return fmt.Errorf("unknown command %q", cfg.Command)
		}
		if len(cfg.Args) != command.args {
			return fmt.Errorf("usage: around %s", command.usage)
		}

		client, closeClient, err := newClient(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeClient()

		client.Start(ctx)
		r := &runner{app: client, out: out, locale: cfg.Locale}
		if command.protected && !client.Session.LoggedIn() {
			return r.notLoggedIn(command.name)
		}
		return command.run(r, ctx, cfg.Args)
	})
}

func newClient(ctx context.Context, cfg Config, log *logrus.Entry) (*app.App, func(), error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// The content service is optional; without it every content operation
	// fails closed.
	var content store.Gateway
	if strings.TrimSpace(cfg.ContentBaseURL) != "" {
		c, err := gateway.NewContent(gateway.Config{
			BaseURL:           cfg.ContentBaseURL,
			Headers:           map[string]string{"authorization": cfg.ContentAuthorization},
			HTTPClient:        httpClient,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Logger:            log,
		})
		if err != nil {
			return nil, nil, err
		}
		content = c
	} else {
		log.Warn("content service base URL is not set")
	}

	auth, err := gateway.NewAuth(gateway.Config{
		BaseURL:           cfg.AuthBaseURL,
		HTTPClient:        httpClient,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            log,
	})
	if err != nil {
		return nil, nil, err
	}

	tokens, err := sqlite.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state: %w", err)
	}

	client := app.New(app.Deps{
		Content:   content,
		Auth:      auth,
		Tokens:    tokens,
		Scheduler: schedule.Real(),
		Locale:    cfg.Locale,
		Logger:    log,
	})
	closeClient := func() {
		client.Close()
		if err := tokens.Close(); err != nil {
			log.WithError(err).Warn("close state")
		}
	}
	return client, closeClient, nil
}
