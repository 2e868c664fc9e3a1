package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/authority"
	"github.com/nthparty/lhe/internal/common"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	bound := flag.Int64("bound", lhe.DefaultBound, "exclusive plaintext bound")
	flag.Parse()

	logger := common.NewLogger("authority")
	scheme := lhe.NewScheme(lhe.NewParams(big.NewInt(*bound)))

	auth := authority.NewAuthority(scheme, logger)
	server := common.NewHttpServer(*addr, logger, auth.Endpoints())

	logger.Info("authority listening on %s", *addr)
	if err := server.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
