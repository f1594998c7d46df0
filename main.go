package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/valyala/fasthttp"
)

var jsonout = flag.Bool("json", false, "also print the run report as json")
var port = flag.String("port", "", "serve the run report on this port")

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Parse()

	report := RunAll(os.Stdout)

	if *jsonout {
		buf, err := config.Marshal(&report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\n%s\n", buf)
	}

	if *port == "" {
		return
	}
	err := fasthttp.ListenAndServe(":"+*port, reportHandler(&report))
	if err != nil {
		log.Fatal(err)
	}
}

func reportHandler(rep *Report) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch {
		case ctx.IsGet() && string(ctx.Path()) == "/report":
			buf, err := config.Marshal(rep)
			if err != nil {
				ctx.SetStatusCode(500)
				return
			}
			ctx.SetContentType("application/json")
			ctx.SetBody(buf)
		default:
			ctx.SetStatusCode(404)
		}
	}
}
