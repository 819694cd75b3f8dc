// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/WeConnect/salus/audit"
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "salus.yml"
	EnvPrefix         = "SALUS"
	ExpirationLayout  = "2006-01-02"
)

func ReadConfig() (*CliConfig, error) {
	// load viper config into a struct
	var opts CliConfig
	err := viper.Unmarshal(&opts, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(ExpirationLayout),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode into config struct")
	}

	return &opts, nil
}

type CliConfig struct {
	// table layout
	MaxModuleLength int  `json:"max_module_length,omitempty" mapstructure:"max_module_length"`
	MaxTitleLength  int  `json:"max_title_length,omitempty" mapstructure:"max_title_length"`
	Colors          bool `json:"colors,omitempty" mapstructure:"colors"`
	NoColor         bool `json:"no_color,omitempty" mapstructure:"no_color"`

	Exceptions []Exception `json:"exceptions,omitempty" mapstructure:"exceptions"`
	// ad-hoc exceptions passed via --exception
	ExceptionIDs []string `json:"exception,omitempty" mapstructure:"exception"`

	Output       string        `json:"output,omitempty" mapstructure:"output"`
	OutputTarget string        `json:"output_target,omitempty" mapstructure:"output_target"`
	Strict       bool          `json:"strict,omitempty" mapstructure:"strict"`
	Timeout      time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`
}

// Exception accepts a single advisory. Expiration is optional, once it has
// passed the exception is no longer applied.
type Exception struct {
	AdvisoryID string    `json:"advisory_id" mapstructure:"advisory_id"`
	ChangedBy  string    `json:"changed_by,omitempty" mapstructure:"changed_by"`
	Notes      string    `json:"notes,omitempty" mapstructure:"notes"`
	Expiration time.Time `json:"expiration,omitempty" mapstructure:"expiration"`
}

// Expired reports whether the exception expired before the day of now.
func (e Exception) Expired(now time.Time) bool {
	if e.Expiration.IsZero() {
		return false
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return e.Expiration.Before(today)
}

func (c *CliConfig) Validate() error {
	var errs *multierror.Error
	if c.MaxModuleLength < 1 {
		errs = multierror.Append(errs, fmt.Errorf("max_module_length must be at least 1, got %d", c.MaxModuleLength))
	}
	if c.MaxTitleLength < 1 {
		errs = multierror.Append(errs, fmt.Errorf("max_title_length must be at least 1, got %d", c.MaxTitleLength))
	}
	for i := range c.Exceptions {
		if strings.TrimSpace(c.Exceptions[i].AdvisoryID) == "" {
			errs = multierror.Append(errs, fmt.Errorf("exception %d has no advisory_id", i+1))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// ActiveExceptions merges the configured exceptions that are still valid at
// now with the ad-hoc ones.
func (c *CliConfig) ActiveExceptions(now time.Time) *audit.ExceptionSet {
	ids := make([]string, 0, len(c.Exceptions)+len(c.ExceptionIDs))
	for _, e := range c.Exceptions {
		if e.Expired(now) {
			log.Warn().
				Str("advisory", e.AdvisoryID).
				Str("expiration", e.Expiration.Format(ExpirationLayout)).
				Str("changed_by", e.ChangedBy).
				Msg("ignoring expired exception")
			continue
		}
		ids = append(ids, e.AdvisoryID)
	}
	ids = append(ids, c.ExceptionIDs...)
	return audit.NewExceptionSet(ids...)
}
