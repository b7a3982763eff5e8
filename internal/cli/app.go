package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/api"
	"github.com/debemdeboas/msgboard/internal/config"
	"github.com/debemdeboas/msgboard/internal/db"
	"github.com/debemdeboas/msgboard/internal/editor"
	"github.com/debemdeboas/msgboard/internal/logger"
	"github.com/debemdeboas/msgboard/internal/repository/drafts"
	"github.com/debemdeboas/msgboard/internal/tui"
)

// app is everything a command needs, built from config and flags.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	editor  *editor.Editor
	drafts  drafts.Repository
	logFile *os.File
}

// setup loads configuration and wires the editor. When logTo is nil, logs go
// to the configured log file.
func setup(opts *options, logTo io.Writer) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := config.LoadConfig(opts.configPath); err != nil {
		return nil, err
	}
	cfg := config.AppConfig

	if opts.baseURL != "" {
		cfg.API.BaseURL = opts.baseURL
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	if logTo == nil {
		f, err := logger.OpenFile(cfg.Logging.File)
		if err != nil {
			return nil, fmt.Errorf(config.ErrOpenLogFileFmt, err)
		}
		a.logFile = f
		logTo = f
	}

	a.log = logger.New(cfg.Logging.Level, logTo)
	setLoggers(a.log)

	repo, err := drafts.Open(cfg.Drafts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.drafts = repo

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(cfg.API.UserAgent),
	)
	a.editor = editor.New(client, repo)

	a.log.Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("drafts_store", cfg.Drafts.Store).
		Msg("Application configured")
	return a, nil
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(l)
	db.SetLogger(l)
	api.SetLogger(l)
	drafts.SetLogger(l)
	editor.SetLogger(l)
	tui.SetLogger(l)
}

func (a *app) Close() error {
	var errs []error
	if a.drafts != nil {
		errs = append(errs, a.drafts.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
