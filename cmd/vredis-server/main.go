// Command vredis-server runs a gnet-based RESP server backed by an
// in-memory database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rsms/go-log"

	"github.com/IceFireDB/vredis/redhub"
	"github.com/IceFireDB/vredis/session"
	"github.com/IceFireDB/vredis/store"
)

func main() {
	var (
		network   string
		addr      string
		multicore bool
		reusePort bool
		debug     bool
	)
	flag.StringVar(&network, "network", "tcp", "server network")
	flag.StringVar(&addr, "addr", "127.0.0.1:6380", "server addr")
	flag.BoolVar(&multicore, "multicore", true, "multicore")
	flag.BoolVar(&reusePort, "reusePort", false, "reusePort")
	flag.BoolVar(&debug, "debug", false, "verbose logging")
	flag.Parse()

	if debug {
		log.RootLogger.Level = log.LevelDebug
	} else {
		log.RootLogger.Level = log.LevelInfo
	}
	log.RootLogger.SetWriter(os.Stderr)

	db := store.New()
	protoAddr := fmt.Sprintf("%s://%s", network, addr)

	rh := redhub.NewRedHub(
		func(c *redhub.Conn) *session.Handler {
			return session.NewHandler(db)
		},
		nil,
		nil,
		log.RootLogger,
	)

	log.RootLogger.Info("started vredis server at %s", protoAddr)
	if err := redhub.ListenAndServe(protoAddr, redhub.Options{
		Multicore: multicore,
		ReusePort: reusePort,
	}, rh); err != nil {
		log.RootLogger.Error("server exited: %v", err)
		os.Exit(1)
	}
}
