// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	HTTP HTTPServer `yaml:"http"`

	Gateway Gateway `yaml:"gateway"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

type Gateway struct {
	// APIKey is the shared secret expected in the X-Api-Key request header.
	APIKey commoncfg.SourceRef `yaml:"apiKey"`

	// APIKeyParsed holds the resolved secret. Populated at startup, never
	// read from the config file.
	APIKeyParsed string `yaml:"-"`

	// SessionDuration bounds the lifetime of an authenticated session.
	// Zero means sessions never expire, which is the default behavior.
	SessionDuration time.Duration `yaml:"sessionDuration" default:"0s"`

	Authority Authority `yaml:"authority"`
}

// Authority locates the external authentication and action-authorization
// service.
type Authority struct {
	BaseURL    string        `yaml:"baseURL" default:"http://localhost:8888"`
	AuthPath   string        `yaml:"authPath" default:"/auth"`
	ActionPath string        `yaml:"actionPath" default:"/doAction"`
	Timeout    time.Duration `yaml:"timeout" default:"3s"`
}
