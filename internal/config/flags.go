package config

import (
	"flag"
)

// parses CLI flags for the server binary
func ParseServerFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	port := fs.String("port", "", "port to listen on (overrides PORT)")
	legacy := fs.Bool("legacy-malformed-message", false, "answer malformed requests with the fixed authorization message")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{Port: *port, LegacyMalformedMessage: *legacy}, nil
}
