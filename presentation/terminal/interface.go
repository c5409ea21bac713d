package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"saucedemo_automation/application/pages"
	"saucedemo_automation/application/resolver"
	"saucedemo_automation/application/suite"
	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"
	"saucedemo_automation/infrastructure/browser"
	"saucedemo_automation/infrastructure/config"
	"saucedemo_automation/infrastructure/storage"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// ErrScenariosFailed is returned by a batch run with at least one failure
var ErrScenariosFailed = errors.New("scenarios failed")

type TerminalInterface struct {
	cfg     *config.Config
	browser interfaces.Browser
	store   interfaces.ReportStore
	session *suite.Session
	runner  *suite.Runner
	logger  *logrus.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewTerminalInterface(args []string) (*TerminalInterface, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	// Setup logger
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	store, err := storage.NewReportStore(cfg.ReportPath())
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize report storage")
	}

	// Initialize browser
	b, err := browser.New(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize browser")
	}

	session := suite.NewSession(b, cfg.BaseURL, suite.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	}, cfg.WaitTimeout, logger)

	return &TerminalInterface{
		cfg:     cfg,
		browser: b,
		store:   store,
		session: session,
		runner:  suite.NewRunner(session, store, suite.Catalogue(), logger),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run - runs the configured batch, or the interactive prompt when none is set
func (t *TerminalInterface) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if t.cfg.Run != "" {
		return t.runScenarios(ctx, t.cfg.Run)
	}

	fmt.Fprintln(t.out, "Swag Labs UI suite")
	fmt.Fprintln(t.out, "==================")
	fmt.Fprintf(t.out, "Driver: %s, storefront: %s\n", t.cfg.Driver, t.cfg.BaseURL)
	fmt.Fprintln(t.out, "Type 'help' for commands, or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(t.out, "Bye!")
			return nil
		case "help":
			t.help()
		case "list":
			t.list(arg)
		case "run":
			if err := t.runScenarios(ctx, arg); err != nil && !errors.Is(err, ErrScenariosFailed) {
				fmt.Fprintf(t.out, "\nRun aborted: %v\n\n", err)
			}
		case "inspect":
			t.inspect(ctx, arg)
		case "report":
			t.report()
		default:
			fmt.Fprintf(t.out, "Unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (t *TerminalInterface) help() {
	fmt.Fprintln(t.out, "  list [filter]     list scenarios")
	fmt.Fprintln(t.out, "  run [filter]      run scenarios (all when no filter)")
	fmt.Fprintln(t.out, "  inspect <item>    read an item card from the current page")
	fmt.Fprintln(t.out, "  report            show the latest saved report")
	fmt.Fprintln(t.out, "  quit              exit")
}

func (t *TerminalInterface) list(filter string) {
	scenarios, err := suite.Select(t.runner.Scenarios(), filter)
	if err != nil {
		fmt.Fprintf(t.out, "%v\n", err)
		return
	}
	for _, sc := range scenarios {
		fmt.Fprintf(t.out, "  %-52s %s\n", sc.Name, sc.Description)
	}
}

func (t *TerminalInterface) runScenarios(ctx context.Context, filter string) error {
	report, err := t.runner.Run(ctx, filter)
	if report != nil {
		t.printReport(report)
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return errors.Wrapf(ErrScenariosFailed, "%d of %d", report.Failed, len(report.Results))
	}
	return nil
}

// inspect resolves an item on whatever page the browser shows. Catalog items
// use every strategy, other names fall back to a scan of the cards.
func (t *TerminalInterface) inspect(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(t.out, "usage: inspect <item name or slug>")
		return
	}

	var (
		details entities.ItemDescriptor
		err     error
	)
	if item, ok := pages.LookupItem(name); ok {
		details, err = t.session.Inventory.ItemDetails(ctx, item)
	} else {
		r := resolver.NewResolver(t.browser, resolver.InventoryFields, t.logger)
		details, err = r.Resolve(ctx, resolver.ByScan(name))
	}

	if err != nil {
		var exhausted *resolver.ExhaustedError
		if errors.As(err, &exhausted) {
			fmt.Fprintf(t.out, "Could not resolve %q:\n", name)
			for _, reason := range exhausted.Reasons() {
				fmt.Fprintf(t.out, "  - %s\n", reason)
			}
			return
		}
		fmt.Fprintf(t.out, "Could not resolve %q: %v\n", name, err)
		return
	}

	fmt.Fprintf(t.out, "Name:        %s\n", details.Name)
	fmt.Fprintf(t.out, "Description: %s\n", details.Description)
	fmt.Fprintf(t.out, "Price:       %s\n", details.Price)
	fmt.Fprintf(t.out, "Image:       %s\n", details.Image)
}

func (t *TerminalInterface) report() {
	report, err := t.store.LoadLatest()
	if errors.Is(err, storage.ErrNoReport) {
		fmt.Fprintln(t.out, "No report saved yet")
		return
	}
	if err != nil {
		fmt.Fprintf(t.out, "Failed to load report: %v\n", err)
		return
	}
	t.printReport(report)
}

func (t *TerminalInterface) printReport(report *entities.RunReport) {
	fmt.Fprintf(t.out, "\nRun %s (%s)\n", report.ID, report.StartedAt.Format("2006-01-02 15:04:05"))
	for _, res := range report.Results {
		mark := "PASS"
		if res.Status == entities.ScenarioStatusFailed {
			mark = "FAIL"
		}
		fmt.Fprintf(t.out, "  %s  %s\n", mark, res.Name)
		if res.Error != "" {
			fmt.Fprintf(t.out, "        %s\n", res.Error)
		}
		if res.Evidence != nil && res.Evidence.Screenshot != "" {
			fmt.Fprintf(t.out, "        screenshot: %s\n", res.Evidence.Screenshot)
		}
	}
	fmt.Fprintf(t.out, "%d passed, %d failed\n\n", report.Passed, report.Failed)
}

func (t *TerminalInterface) Close() error {
	return t.browser.Close()
}
