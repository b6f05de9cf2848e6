package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	authinadapter "factoryerp/internal/modules/auth/adapter/in"
	authoutadapter "factoryerp/internal/modules/auth/adapter/out"
	authservice "factoryerp/internal/modules/auth/service"
	authusecase "factoryerp/internal/modules/auth/usecase"
	calcinadapter "factoryerp/internal/modules/calc/adapter/in"
	calcusecase "factoryerp/internal/modules/calc/usecase"
	formsinadapter "factoryerp/internal/modules/forms/adapter/in"
	formsoutadapter "factoryerp/internal/modules/forms/adapter/out"
	formsusecase "factoryerp/internal/modules/forms/usecase"
	reportinadapter "factoryerp/internal/modules/reporting/adapter/in"
	reportoutadapter "factoryerp/internal/modules/reporting/adapter/out"
	reportservice "factoryerp/internal/modules/reporting/service"
	reportusecase "factoryerp/internal/modules/reporting/usecase"
	reqinadapter "factoryerp/internal/modules/requisition/adapter/in"
	reqoutadapter "factoryerp/internal/modules/requisition/adapter/out"
	reqin "factoryerp/internal/modules/requisition/port/in"
	requsecase "factoryerp/internal/modules/requisition/usecase"
	"factoryerp/internal/platform/clock"
	"factoryerp/internal/platform/config"
	"factoryerp/internal/platform/httpapi"
	"factoryerp/internal/platform/id"
	uiapp "factoryerp/internal/ui/app"
)

type App struct {
	CalcCLI        calcinadapter.CLIHandler
	AuthCLI        authinadapter.CLIHandler
	FormsCLI       formsinadapter.CLIHandler
	RequisitionCLI reqinadapter.CLIHandler
	ReportCLI      reportinadapter.CLIHandler
	Logger         *zap.Logger

	storage *authoutadapter.SQLiteStorage
	// decisions backs the approvals tab, which always collects remarks itself.
	decisions reqin.Usecase
}

// Terminal is where the remarks prompt reads and writes outside the TUI.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func New(cfg config.Config, logger *zap.Logger, term Terminal) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}

	storage, err := authoutadapter.NewSQLiteStorage(cfg.StoragePath, clk)
	if err != nil {
		return nil, fmt.Errorf("open client storage: %w", err)
	}
	authUC := authusecase.NewInteractor(authservice.NewSessionService(storage))

	client := httpapi.New(cfg.BaseURL, cfg.Timeout, id.UUID{}, logger.Named("http"))

	formsUC := formsusecase.NewInteractor(formsoutadapter.NewHTTPGateway(client), logger.Named("forms"))

	reqUC := requsecase.NewInteractor(
		reqoutadapter.NewLinePrompter(term.In, term.Out),
		reqoutadapter.NewHTTPDecider(client),
		logger.Named("requisition"),
	)

	reportUC := reportusecase.NewInteractor(
		reportservice.NewReportService(reportoutadapter.NewHTTPSource(client), logger.Named("reporting")),
		reportoutadapter.NewXLSXExporter(),
		clk,
	)

	return &App{
		CalcCLI:        NewCalcCLI(),
		AuthCLI:        authinadapter.NewCLIHandler(authUC),
		FormsCLI:       formsinadapter.NewCLIHandler(formsUC),
		RequisitionCLI: reqinadapter.NewCLIHandler(reqUC),
		ReportCLI:      reportinadapter.NewCLIHandler(reportUC),
		Logger:         logger,
		storage:        storage,
		decisions:      reqUC,
	}, nil
}

// NewCalcCLI needs no storage or backend.
func NewCalcCLI() calcinadapter.CLIHandler {
	return calcinadapter.NewCLIHandler(calcusecase.NewInteractor())
}

func (a *App) Close() error {
	return errors.Join(a.storage.Close(), a.Logger.Sync())
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.FormsCLI, app.AuthCLI, app.ReportCLI, app.decisions)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
