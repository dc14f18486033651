package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/multisafe/app"
	"github.com/tendermint/tendermint/libs/log"
)

// nodeFlags are shared by all commands that open the application state.
type nodeFlags struct {
	home     *string
	backend  *string
	logLevel *string
}

func declareNodeFlags(fl *flag.FlagSet) nodeFlags {
	return nodeFlags{
		home: fl.String("home", defaultHome(),
			"Directory where the application state is stored. You can use MSAFE_HOME environment variable to set it."),
		backend: fl.String("backend", app.BackendBadger,
			"Store backend, one of memory, iavl or badger. State of the memory backend is lost on exit."),
		logLevel: fl.String("log-level", "error", "Log level, one of debug, info or error."),
	}
}

// open returns the application using the state stored in the home
// directory.
func (nf nodeFlags) open() (*app.Application, error) {
	allow, err := log.AllowLevel(*nf.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), allow)

	if *nf.backend != app.BackendMemory {
		if err := os.MkdirAll(*nf.home, 0700); err != nil {
			return nil, fmt.Errorf("cannot create home directory: %s", err)
		}
	}
	kv, err := app.OpenStore(*nf.backend, *nf.home)
	if err != nil {
		return nil, fmt.Errorf("cannot open store: %s", err)
	}
	a, err := app.New(kv, logger.With("module", "multisafe"))
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("cannot load application: %s", err)
	}
	return a, nil
}
