package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 3000
)

type Config struct {
	Host  string `toml:"host"`
	Port  uint   `toml:"port"`
	DBUrl string `toml:"db_url"`
	Debug bool   `toml:"debug"`

	Addr string `toml:"-"`
}

func Default() Config {
	return Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Flags holds the command line surface. Values only override the
// configuration when the flag was explicitly set.
type Flags struct {
	ConfigFile string
	Config
}

func (f *Flags) Register(fs *pflag.FlagSet) {
	def := Default()
	fs.StringVar(&f.ConfigFile, "config", "", "path to a TOML configuration file")
	fs.StringVar(&f.Host, "host", def.Host, "listen host name")
	fs.UintVar(&f.Port, "port", def.Port, "listen port number (overrides $PORT)")
	fs.StringVar(&f.DBUrl, "db-url", def.DBUrl, "path to SQLite3 DB file (empty keeps surveys in memory)")
	fs.BoolVar(&f.Debug, "debug", def.Debug, "log at DEBUG level")
}

// Resolve layers defaults, the TOML file, the PORT variable and explicitly
// set flags, in that order.
func Resolve(fs *pflag.FlagSet, flags Flags, getenv func(string) string) (cfg Config, err error) {
	cfg = Default()

	if flags.ConfigFile != "" {
		_, err = toml.DecodeFile(flags.ConfigFile, &cfg)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = fmt.Errorf("config file %s not found", flags.ConfigFile)
			}
			return
		}
	}

	if port := getenv("PORT"); port != "" {
		var p uint64
		p, err = strconv.ParseUint(port, 10, 16)
		if err != nil {
			err = fmt.Errorf("invalid PORT %q", port)
			return
		}
		cfg.Port = uint(p)
	}

	if fs.Changed("host") {
		cfg.Host = flags.Host
	}
	if fs.Changed("port") {
		cfg.Port = flags.Port
	}
	if fs.Changed("db-url") {
		cfg.DBUrl = flags.DBUrl
	}
	if fs.Changed("debug") {
		cfg.Debug = flags.Debug
	}

	if cfg.Port > 65535 {
		err = fmt.Errorf("port %d out of range", cfg.Port)
		return
	}

	cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
	return
}

var reAnyHost = regexp.MustCompile(`^(0\.0\.0\.0|\[::\])`)

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = reAnyHost.ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
