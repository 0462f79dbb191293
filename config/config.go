package config

import (
	"errors"
	"flag"
	"net"
	"regexp"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DBUrl       string
	SheetURL    string
	AIEndpoint  string
	AIKey       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", "ecoform.sqlite", "path to SQLite3 DB file (default ecoform.sqlite)")
	flag.StringVar(&cfg.SheetURL, "sheet-url", "", "webhook URL of the spreadsheet store")
	flag.StringVar(&cfg.AIEndpoint, "ai-endpoint", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent", "generative endpoint for AI schema generation")
	flag.StringVar(&cfg.AIKey, "ai-key", "", "API key for AI schema generation (optional)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", "", "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds (default 120)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}
	if cfg.SheetURL == "" {
		err = errors.New("missing parameter -sheet-url")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
