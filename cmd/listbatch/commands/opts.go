package commands

import (
	"listbatch/pkg/config"
	"listbatch/pkg/log"
)

// Root carries the dependencies shared by all subcommands, filled in by the
// root command's PersistentPreRunE before any RunE fires
type Root struct {
	Config  *config.Config
	Console *log.Logger
}
