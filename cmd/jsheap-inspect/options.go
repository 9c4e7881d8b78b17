package main

// options.go parses jsheap-inspect's command-line flags into an options
// struct: a flat struct of primitive fields, one flag.NewFlagSet call, no
// external flag library.

import (
	"flag"
	"os"
	"time"
)

type options struct {
	version bool
	target  string
	json    bool

	watch    bool
	interval time.Duration

	heapProfile      string
	goroutineProfile string

	history string
}

func parseFlags() *options {
	fs := flag.NewFlagSet("jsheap-inspect", flag.ExitOnError)

	opts := &options{}
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.StringVar(&opts.target, "target", "http://localhost:6060", "target process base URL")
	fs.BoolVar(&opts.json, "json", false, "print the snapshot as JSON instead of a pretty summary")
	fs.BoolVar(&opts.watch, "watch", false, "poll repeatedly instead of a single fetch")
	fs.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval in watch mode")
	fs.StringVar(&opts.heapProfile, "heap-profile", "", "download a heap pprof profile to this path and exit")
	fs.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download a goroutine pprof profile to this path and exit")
	fs.StringVar(&opts.history, "history", "", "persist every polled snapshot to a Badger database at this path")

	_ = fs.Parse(os.Args[1:])
	return opts
}
