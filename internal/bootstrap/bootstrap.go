package bootstrap

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	sessioninadapter "studylog/internal/modules/session/adapter/in"
	sessionoutadapter "studylog/internal/modules/session/adapter/out"
	sessiondto "studylog/internal/modules/session/dto"
	sessionservice "studylog/internal/modules/session/service"
	sessionusecase "studylog/internal/modules/session/usecase"
	statsinadapter "studylog/internal/modules/stats/adapter/in"
	statsoutadapter "studylog/internal/modules/stats/adapter/out"
	statsdomain "studylog/internal/modules/stats/domain"
	statsservice "studylog/internal/modules/stats/service"
	statsusecase "studylog/internal/modules/stats/usecase"
	timerinadapter "studylog/internal/modules/timer/adapter/in"
	timeroutadapter "studylog/internal/modules/timer/adapter/out"
	timerout "studylog/internal/modules/timer/port/out"
	timerservice "studylog/internal/modules/timer/service"
	timerusecase "studylog/internal/modules/timer/usecase"
	"studylog/internal/platform/clock"
	"studylog/internal/platform/config"
	"studylog/internal/platform/id"
	"studylog/internal/platform/logging"
	uiapp "studylog/internal/ui/app"
)

type App struct {
	Config config.Config
	Log    hclog.Logger
	Loaded sessiondto.LoadOutput

	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler
	TimerCLI   timerinadapter.CLIHandler
	TimerTUI   timerinadapter.TUIHandler
	StatsCLI   statsinadapter.CLIHandler
	StatsTUI   statsinadapter.TUIHandler

	closers []io.Closer
}

// New wires every module against the data directory and loads the session
// collection once, migrating the legacy store on first run.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	log := logging.New(cfg.LogLevel, logOut)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	tiers, err := statsdomain.NewTiers(cfg.TierThresholds)
	if err != nil {
		return nil, fmt.Errorf("tier thresholds: %w", err)
	}
	if _, err := statsdomain.ParseRange(cfg.DefaultRange); err != nil {
		return nil, fmt.Errorf("default_range: %w", err)
	}

	recordStore, err := sessionoutadapter.NewSQLiteRecordStore(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	sessionSvc := sessionservice.NewSessionService(
		clk,
		ids,
		cfg.Location,
		recordStore,
		sessionoutadapter.NewFileLegacyStore(cfg.LegacyPath, cfg.LegacyKey),
		log,
	)
	sessionUC := sessionusecase.NewInteractor(sessionSvc)
	loaded, err := sessionUC.Load(ctx)
	if err != nil {
		_ = recordStore.Close()
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	var notifier timerout.Notifier
	if cfg.Notify {
		notifier = timeroutadapter.NewDesktopNotifier()
	}
	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(
		clk,
		timeroutadapter.NewFileStopwatchStore(cfg.StopwatchPath),
		timeroutadapter.NewSessionRecorderAdapter(sessionUC),
		notifier,
		log,
	))

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		clk,
		cfg.Location,
		tiers,
		statsoutadapter.NewSessionSourceAdapter(sessionUC),
		log,
	))

	return &App{
		Config:     cfg,
		Log:        log,
		Loaded:     loaded,
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI: sessioninadapter.NewTUIHandler(sessionUC),
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		TimerTUI:   timerinadapter.NewTUIHandler(timerUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		StatsTUI:   statsinadapter.NewTUIHandler(statsUC),
		closers:    []io.Closer{recordStore},
	}, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.Location, app.Config.DefaultRange, app.TimerTUI, app.SessionTUI, app.StatsTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
