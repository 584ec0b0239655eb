package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pomo/internal/config"
	"github.com/ayoisaiah/pomo/internal/logging"
	"github.com/ayoisaiah/pomo/internal/models"
	"github.com/ayoisaiah/pomo/internal/osutil"
	"github.com/ayoisaiah/pomo/internal/pathutil"
	"github.com/ayoisaiah/pomo/internal/sound"
	"github.com/ayoisaiah/pomo/internal/timeutil"
	"github.com/ayoisaiah/pomo/store"
	"github.com/ayoisaiah/pomo/timer"
)

const (
	envUpdateNotifier = "POMO_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envPomoNoColor    = "POMO_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// checkForUpdates alerts the user if there is
// an updated version of pomo from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get("https://github.com/ayoisaiah/pomo/releases/latest")
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/pomo/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln("A new release of pomo is available: %s at %s", version, resp.Request.URL.String())
	}
}

// loadConfig builds the timer configuration. On the first run the user is
// prompted for their preferences if stdin is a terminal.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	var opts []config.Option

	if isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(
		opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	cfg.PathToDB = pathutil.DBFilePath()

	return cfg, nil
}

// players loads the background music and chime. A sound that cannot be
// played is replaced with silence.
func players(cfg *config.Config, l *slog.Logger) (*sound.Music, *sound.Chime) {
	music, err := sound.NewMusic(cfg.Settings.AmbientSound)
	if err != nil {
		l.Warn("background music disabled", slog.Any("error", err))
	}

	chime, err := sound.NewChime(cfg.Settings.ChimeSound)
	if err != nil {
		l.Warn("chime disabled", slog.Any("error", err))
	}

	return music, chime
}

// defaultAction starts the timer.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger, closer := logging.New(logging.Options{
		Path:  pathutil.LogFilePath(),
		Debug: cfg.Debug,
	})

	defer closer.Close()

	slog.SetDefault(logger)

	music, chime := players(cfg, logger)
	defer music.Close()

	t, err := timer.New(
		cfg,
		timer.WithMusic(music),
		timer.WithChime(chime),
		timer.WithRecorder(store.Appender{Path: cfg.PathToDB}),
		timer.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	defer t.Close()

	_, err = tea.NewProgram(t, tea.WithAltScreen()).Run()

	return err
}

// editConfigAction handles the edit-config command which opens the pomo
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// writes the default config on first use
	cfg, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// historyWindow returns the time range selected by --period and --since.
// --since takes precedence.
func historyWindow(ctx *cli.Context, now time.Time) (start, end time.Time, err error) {
	if since := ctx.String("since"); since != "" {
		start, err = timeutil.FromStr(since)
		if err != nil {
			return start, end, errParsingDate.Fmt(since).Wrap(err)
		}

		return start, timeutil.RoundToEnd(now), nil
	}

	period := timeutil.Period(ctx.String("period"))
	if period == "" {
		period = timeutil.PeriodToday
	}

	if !slices.Contains(timeutil.PeriodCollection, period) {
		names := make([]string, len(timeutil.PeriodCollection))
		for i, p := range timeutil.PeriodCollection {
			names[i] = string(p)
		}

		return start, end, errInvalidPeriod.Fmt(period, strings.Join(names, ", "))
	}

	start, end = timeutil.PeriodBounds(period, now)

	return start, end, nil
}

// readHistory returns the phases that ended within [start, end]. A missing
// database has no history.
func readHistory(dbPath string, start, end time.Time) ([]*models.Record, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := store.NewClient(dbPath, store.ReadOnly())
	if err != nil {
		return nil, err
	}

	defer db.Close()

	return db.Records(start, end)
}

// historyAction handles the history command which lists the phases
// finished within a time period.
func historyAction(ctx *cli.Context) error {
	start, end, err := historyWindow(ctx, time.Now())
	if err != nil {
		return err
	}

	cfg, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
	if err != nil {
		return err
	}

	records, err := readHistory(pathutil.DBFilePath(), start, end)
	if err != nil {
		return err
	}

	return listHistory(
		os.Stdout,
		records,
		ctx.Bool("json"),
		cfg.Display.TwentyFourHour,
	)
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/pomo/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envPomoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return errPaths.Wrap(err)
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting pomo")

	return nil
}
