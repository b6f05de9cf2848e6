package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"factoryerp/internal/bootstrap"
	"factoryerp/internal/platform/config"
	"factoryerp/internal/platform/logging"
	"factoryerp/internal/ui/components"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var shown noticeShown
		if !errors.As(err, &shown) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// noticeShown marks a failure whose message already reached the user.
type noticeShown struct{ error }

func (n noticeShown) Unwrap() error { return n.error }

type globalFlags struct {
	home    string
	baseURL string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	if home, err := os.UserHomeDir(); err == nil {
		flags.home = home
	}

	root := &cobra.Command{
		Use:           "factoryerp",
		Short:         "Factory ERP terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", flags.home, "directory holding .factoryerp")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "backend base URL (overrides config and "+config.BaseURLEnv+")")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newCalcCmd())
	root.AddCommand(newAuthCmd(flags))
	for _, spec := range formCommands {
		root.AddCommand(newFormCmd(flags, spec))
	}
	root.AddCommand(newReportCmd(flags))
	return root
}

func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.home)
	if err != nil {
		return nil, err
	}
	if flags.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(flags.baseURL, "/")
	}
	cfg.Verbose = cfg.Verbose || flags.verbose
	logger, err := logging.New(cfg.LogPath, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", zap.String("base_url", cfg.BaseURL), zap.String("storage", cfg.StoragePath))
	return bootstrap.New(cfg, logger, bootstrap.Terminal{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()})
}

func withApp(flags *globalFlags, run func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, flags)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return run(cmd, args, app)
	}
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the factory ERP terminal UI",
		RunE: withApp(flags, func(_ *cobra.Command, _ []string, app *bootstrap.App) error {
			return bootstrap.RunTUI(app)
		}),
	}
}

func newCalcCmd() *cobra.Command {
	calc := &cobra.Command{Use: "calc", Short: "Derived production figures"}

	var actual, target string
	overtime := &cobra.Command{
		Use:   "overtime --actual <n> --target <n>",
		Short: "Overtime hours for output above target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), bootstrap.NewCalcCLI().Overtime(actual, target))
			return nil
		},
	}
	overtime.Flags().StringVar(&actual, "actual", "", "actual output")
	overtime.Flags().StringVar(&target, "target", "", "target output")

	var input, output string
	wastage := &cobra.Command{
		Use:   "wastage --input <n> --output <n>",
		Short: "Material lost between input and output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), bootstrap.NewCalcCLI().Wastage(input, output))
			return nil
		},
	}
	wastage.Flags().StringVar(&input, "input", "", "input material")
	wastage.Flags().StringVar(&output, "output", "", "output material")

	calc.AddCommand(overtime, wastage)
	return calc
}

func newAuthCmd(flags *globalFlags) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Stored session"}

	var token, user, role string
	set := &cobra.Command{
		Use:   "set --token <token> [--user <json>] [--role staff|admin]",
		Short: "Persist a session token",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.AuthCLI.Store(cmd.Context(), token, user, role); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session stored")
			return nil
		}),
	}
	set.Flags().StringVar(&token, "token", "", "bearer token")
	set.Flags().StringVar(&user, "user", "", `user JSON, e.g. {"id":1,"email":"a@b.c"}`)
	set.Flags().StringVar(&role, "role", "", "user role: staff|admin")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			s, err := app.AuthCLI.Current(cmd.Context())
			if err != nil {
				return err
			}
			if s.Anonymous {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "anonymous")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user: %s\nemail: %s\nrole: %s\n", s.UserID, s.Email, s.Role)
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored session",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.AuthCLI.Clear(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		}),
	}

	auth.AddCommand(set, show, clearCmd)
	return auth
}

// formFlag binds one command-line flag to a form field.
type formFlag struct {
	flag  string
	field string
	usage string
	multi bool
}

type formCommand struct {
	kind   string
	short  string
	fields []formFlag
}

var formCommands = []formCommand{
	{
		kind:  "production",
		short: "Production entries",
		fields: []formFlag{
			{flag: "worker-id", field: "worker_id", usage: "worker id"},
			{flag: "item-id", field: "item_id", usage: "item id"},
			{flag: "date", field: "date", usage: "production date (YYYY-MM-DD)"},
			{flag: "target", field: "target", usage: "target output"},
			{flag: "actual", field: "actual", usage: "actual output"},
			{flag: "input-material", field: "input_material", usage: "input material"},
			{flag: "output-material", field: "output_material", usage: "output material"},
		},
	},
	{
		kind:  "attendance",
		short: "Attendance entries",
		fields: []formFlag{
			{flag: "worker", field: "workers", usage: "present worker id (repeatable)", multi: true},
			{flag: "date", field: "date", usage: "attendance date (YYYY-MM-DD)"},
		},
	},
	{
		kind:  "downtime",
		short: "Machine downtime entries",
		fields: []formFlag{
			{flag: "machine-name", field: "machine_name", usage: "machine name"},
			{flag: "start-time", field: "start_time", usage: "downtime start"},
			{flag: "end-time", field: "end_time", usage: "downtime end"},
			{flag: "remarks", field: "remarks", usage: "remarks"},
		},
	},
	{
		kind:  "requisition",
		short: "Material requisitions",
		fields: []formFlag{
			{flag: "item-id", field: "item_id", usage: "item id"},
			{flag: "quantity", field: "quantity", usage: "quantity"},
		},
	},
}

func newFormCmd(flags *globalFlags, spec formCommand) *cobra.Command {
	parent := &cobra.Command{Use: spec.kind, Short: spec.short}

	values := make(map[string]*string, len(spec.fields))
	selections := make(map[string]*[]string)
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Validate and send a " + spec.kind + " form",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			token, err := sessionToken(cmd.Context(), app)
			if err != nil {
				return err
			}
			vals := map[string]string{}
			for _, f := range spec.fields {
				if !f.multi && cmd.Flags().Changed(f.flag) {
					vals[f.field] = *values[f.field]
				}
			}
			sels := map[string][]string{}
			for field, picked := range selections {
				sels[field] = *picked
			}
			out, err := app.FormsCLI.Submit(cmd.Context(), spec.kind, vals, sels, token)
			return printNotice(cmd, out.Level, out.Message, err)
		}),
	}
	for _, f := range spec.fields {
		if f.multi {
			picked := []string{}
			selections[f.field] = &picked
			submit.Flags().StringArrayVar(&picked, f.flag, nil, f.usage)
			continue
		}
		v := new(string)
		values[f.field] = v
		submit.Flags().StringVar(v, f.flag, "", f.usage)
	}
	parent.AddCommand(submit)

	if spec.kind == "requisition" {
		parent.AddCommand(newDecisionCmd(flags, "approve"), newDecisionCmd(flags, "reject"))
	}
	return parent
}

func newDecisionCmd(flags *globalFlags, action string) *cobra.Command {
	var remarks string
	cmd := &cobra.Command{
		Use:   action + " <requisition-id> [--remarks <text>]",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a requisition",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			token, err := sessionToken(cmd.Context(), app)
			if err != nil {
				return err
			}
			var given *string
			if cmd.Flags().Changed("remarks") {
				given = &remarks
			}
			out, err := app.RequisitionCLI.Decide(cmd.Context(), args[0], action, token, given)
			return printNotice(cmd, out.Level, out.Message, err)
		}),
	}
	cmd.Flags().StringVar(&remarks, "remarks", "", "remarks sent with the decision (prompted when omitted)")
	return cmd
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Production reporting"}

	var width int
	production := &cobra.Command{
		Use:   "production",
		Short: "Target versus actual by item",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			chart, err := app.ReportCLI.ProductionChart(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderChart(chart, width))
			return nil
		}),
	}
	production.Flags().IntVar(&width, "width", 80, "chart width in columns")

	history := &cobra.Command{
		Use:   "history <worker-id>",
		Short: "Production history for one worker",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.ReportCLI.WorkerHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderHistory(out))
			return nil
		}),
	}

	attendance := &cobra.Command{
		Use:   "attendance",
		Short: "Present workers per section",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			rows, err := app.ReportCLI.Attendance(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderAttendance(rows))
			return nil
		}),
	}

	downtime := &cobra.Command{
		Use:   "downtime",
		Short: "Recent machine downtime",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			rows, err := app.ReportCLI.Downtime(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderDowntime(rows))
			return nil
		}),
	}

	flow := &cobra.Command{
		Use:   "material-flow",
		Short: "Output and input between sections",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			rows, err := app.ReportCLI.MaterialFlow(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderMaterialFlow(rows))
			return nil
		}),
	}

	var outPath, workerID string
	export := &cobra.Command{
		Use:   "export --out <file.xlsx> [--worker <id>]",
		Short: "Write the production report to a spreadsheet",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if strings.TrimSpace(outPath) == "" {
				return fmt.Errorf("--out is required")
			}
			out, err := app.ReportCLI.Export(cmd.Context(), outPath, workerID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s items=%d history=%d\n", out.Path, out.Items, out.HistoryRows)
			return nil
		}),
	}
	export.Flags().StringVar(&outPath, "out", "", "destination .xlsx path")
	export.Flags().StringVar(&workerID, "worker", "", "include this worker's history")

	report.AddCommand(production, history, attendance, downtime, flow, export)
	return report
}

func sessionToken(ctx context.Context, app *bootstrap.App) (string, error) {
	s, err := app.AuthCLI.Current(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// printNotice writes the user-facing notification and passes err through.
// Error notices go to stderr and stand in for the error text.
func printNotice(cmd *cobra.Command, level, message string, err error) error {
	if message == "" {
		return err
	}
	if level != "error" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
		return err
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), message)
	if err == nil {
		return nil
	}
	return noticeShown{err}
}
