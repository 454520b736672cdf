package main

import (
	"flag"
	"log"
	"os"

	"github.com/funge98/gofunge/interp"
)

func main() {
	var config string
	var input string
	var output string
	var ticks int
	var verbose bool

	flag.StringVar(&config, "c", "", "policy .toml file")
	flag.StringVar(&input, "i", "-", "program input")
	flag.StringVar(&output, "o", "-", "program output")
	flag.IntVar(&ticks, "t", 0, "tick limit (0 = none)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("%v: no program file", os.Args[0])
	}

	cfg := interp.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = interp.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	if ticks != 0 {
		cfg.MaxTicks = ticks
	}
	cfg.Args = flag.Args()

	in := interp.New(cfg)
	in.Verbose = verbose

	if err := in.LoadFile(flag.Arg(0)); err != nil {
		log.Fatalf("%v: %v", flag.Arg(0), err)
	}

	if input == "-" {
		in.Console.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		in.Console.Input = inf
	}

	if output == "-" {
		in.Console.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		in.Console.Output = ouf
	}

	code, err := in.Run()
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(code)
}
