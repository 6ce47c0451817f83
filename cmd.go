package sexlinked

import (
	"os"

	"git.arvados.org/arvados.git/lib/cmd"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var handler = cmd.Multi(map[string]cmd.Handler{
	"version":   cmd.Version,
	"-version":  cmd.Version,
	"--version": cmd.Version,

	"classify": &classifyCmd{},
})

// Main runs the subcommand named in os.Args and exits with its status.
func Main() {
	logrus.SetFormatter(logFormatter(isatty.IsTerminal(os.Stderr.Fd())))
	os.Exit(handler.RunCommand(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// logFormatter returns the stderr log format. Logs that are not going
// to a terminal have no timestamps or colors.
func logFormatter(tty bool) logrus.Formatter {
	if tty {
		return &logrus.TextFormatter{FullTimestamp: true}
	}
	return &logrus.TextFormatter{DisableTimestamp: true, DisableColors: true}
}
