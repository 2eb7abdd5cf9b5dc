package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type (
	// Environment holds deployment settings read from environment variables
	Environment struct {
		Unsplash UnsplashProperties `envPrefix:"UNSPLASH_"`
		S3       S3Properties       `envPrefix:"S3_"`

		// MediaDB overrides where the media store keeps its index
		MediaDB string `env:"MEDIA_DB"`
	}

	UnsplashProperties struct {
		AccessKey string `env:"ACCESS_KEY"`
		APIURL    string `env:"API_URL" envDefault:"https://api.unsplash.com"`
		PageSize  int    `env:"PAGE_SIZE" envDefault:"30"`
	}

	S3Properties struct {
		Endpoint  string `env:"ENDPOINT"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"photos"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	}
)

// ReadEnvironment parses the process environment
func ReadEnvironment() (*Environment, error) {
	return ParseEnvironment(env.Options{})
}

// ParseEnvironment parses with explicit options, used to inject variables
func ParseEnvironment(opts env.Options) (*Environment, error) {
	config := &Environment{}
	if err := env.Parse(config, opts); err != nil {
		return nil, fmt.Errorf("read environment error: %w", err)
	}
	return config, nil
}

// HasBucket reports whether an S3 endpoint is configured
func (e *Environment) HasBucket() bool {
	return e.S3.Endpoint != ""
}
