package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
	"github.com/nthparty/lhe/internal/evaluator"
)

func main() {
	addr := flag.String("addr", ":8082", "listen address")
	bound := flag.Int64("bound", lhe.DefaultBound, "exclusive plaintext bound")
	flag.Parse()

	logger := common.NewLogger("evaluator")
	scheme := lhe.NewScheme(lhe.NewParams(big.NewInt(*bound)))

	server := common.NewHttpServer(*addr, logger, evaluator.NewServer(scheme, logger).Endpoints())

	logger.Info("evaluator listening on %s", *addr)
	if err := server.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
