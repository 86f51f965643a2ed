package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/ampsh/commands"
	"github.com/josephlewis42/ampsh/core/config"
	"github.com/josephlewis42/ampsh/core/logger"
	"github.com/josephlewis42/ampsh/core/ttylog"
	"github.com/josephlewis42/ampsh/core/vos"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
	verbose     bool

	// exitCode is the status of the last command run by the interpreter.
	exitCode int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in defaults if there's no
// configuration file.
func loadConfigOrDefault(logger *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No %s in %q, using defaults: did you run init?", config.ConfigurationName, cfgPath)
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ampsh",
	Short: "A minimal interactive command interpreter",
	Long: `A minimal interactive command interpreter.

Each line is split on & into commands that run one after another. A line
ending in & runs its commands as background jobs, which are announced and
then waited for. cd and exit are built in, everything else is looked up on
the PATH.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		diag := log.New(io.Discard, "[ampsh] ", 0)
		if verbose {
			diag.SetOutput(cmd.ErrOrStderr())
		}

		configuration, err := loadConfigOrDefault(diag)
		if err != nil {
			return err
		}

		interactive := !cmd.Flags().Changed("command")
		session, err := newSession(configuration, diag, interactive)
		if err != nil {
			return err
		}
		defer session.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if !interactive {
			exitCode = session.Shell.RunCommand(ctx, commandLine)
			return nil
		}

		exitCode = session.Shell.RunInteractive(ctx)
		return nil
	},
}

// session is one run of the interpreter attached to the terminal.
type session struct {
	Shell *commands.Shell

	closers []io.Closer
}

// newSession wires the shell to the terminal, the event log and, for
// interactive sessions, the session recording.
func newSession(configuration *config.Configuration, diag *log.Logger, interactive bool) (*session, error) {
	out := &session{}

	events := logger.NewNopLogger()
	if configuration.EventLog {
		fd, err := configuration.OpenAppLog()
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		out.closers = append(out.closers, fd)
		events = logger.NewJsonLinesLogRecorder(fd)
	}
	sessionLogger := events.NewSession()

	var vio vos.VIO = vos.NewOSIO()
	pty := vos.DetectPTY(os.Stdout)

	if configuration.RecordSessions && interactive {
		fd, err := configuration.CreateSessionLog(sessionLogger.SessionID() + "." + ttylog.AsciicastFileExt)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("creating session log: %w", err)
		}
		recorder := ttylog.NewRecorder(vio, ttylog.NewAsciicastLogSink(fd, pty))
		out.closers = append(out.closers, fd, recorder)
		diag.Printf("Recording session to %s", fd.Name())
		vio = recorder
	}

	out.Shell = commands.NewShell(configuration, vio, pty, sessionLogger)
	out.Shell.Logger = diag
	out.Shell.Executor.Logger = diag

	return out, nil
}

// Close releases the session's logs, most recently opened first.
func (s *session) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
}
