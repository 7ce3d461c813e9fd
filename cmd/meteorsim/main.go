package main

import (
	"log"
	"net"
	"net/http"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	meteor "github.com/nmistikm-ship-it/meteor-demo"
)

func main() {
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Println("Metrics server listening at 0.0.0.0:8086")
		ln, err := net.Listen("tcp", "0.0.0.0:8086")
		if err != nil {
			log.Fatal(err)
		}
		http.Serve(ln, nil)
	}()

	go startRESTServer()

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	engine := meteor.NewEngine(meteor.Earth, logger)
	runSimulation(engine)
}
