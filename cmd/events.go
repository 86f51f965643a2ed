package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/josephlewis42/ampsh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var (
	eventsSession string
	eventsTypes   []string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the interpreter event log.",
}

var eventsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the event log as YAML.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return withAppLog(func(r io.Reader) error {
			return writeReport(r, cmd.OutOrStdout(), eventFilter(eventsSession, eventsTypes))
		})
	},
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one line per event, oldest first.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return withAppLog(func(r io.Reader) error {
			return writeEventList(r, cmd.OutOrStdout(), eventFilter(eventsSession, eventsTypes))
		})
	},
}

func withAppLog(fn func(r io.Reader) error) error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}

	fd, err := configuration.ReadAppLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return fn(fd)
}

// eventFilter keeps entries of the given session and types, empty values
// match everything.
func eventFilter(session string, types []string) func(le *logger.LogEntry) bool {
	wanted := make(map[logger.EventType]bool)
	for _, t := range types {
		wanted[logger.EventType(t)] = true
	}

	return func(le *logger.LogEntry) bool {
		if session != "" && !strings.HasPrefix(le.SessionID, session) {
			return false
		}
		return len(wanted) == 0 || wanted[le.Type]
	}
}

func writeReport(r io.Reader, w io.Writer, keep func(*logger.LogEntry) bool) error {
	var report logger.Report
	if err := logger.ReadJSONLinesLog(r, func(le *logger.LogEntry) {
		if keep(le) {
			report.Update(le)
		}
	}); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

func writeEventList(r io.Reader, w io.Writer, keep func(*logger.LogEntry) bool) error {
	var entries []*logger.LogEntry
	if err := logger.ReadJSONLinesLog(r, func(le *logger.LogEntry) {
		if keep(le) {
			entries = append(entries, le)
		}
	}); err != nil {
		return err
	}

	// Sessions may interleave in a shared log.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimestampMicros < entries[j].TimestampMicros
	})

	for _, le := range entries {
		detail, err := yaml.Marshal(le.Event)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %-15s %s\n",
			le.Time().UTC().Format(time.RFC3339),
			shortSession(le.SessionID),
			le.Type,
			strings.Join(strings.Fields(string(detail)), " "))
	}
	return nil
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsReportCmd)
	eventsCmd.AddCommand(eventsListCmd)

	for _, cmd := range []*cobra.Command{eventsReportCmd, eventsListCmd} {
		cmd.Flags().StringVarP(&eventsSession, "session", "s", "", "only events of the session with this ID prefix")
		cmd.Flags().StringSliceVarP(&eventsTypes, "type", "t", nil, "only events of these types (e.g. run_command,syntax_error)")
	}
}
