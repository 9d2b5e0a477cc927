// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config package should avoid importing any ecash packages in order to
// prevent any cyclic-dependancy issues

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.ecash/"

	// name for the config file. Does not include extension.
	configFileName = "ecash"

	envPrefix = "ECASH"
)

var r *Registry

// Registry stores all loaded configurations according to the config order
// NB It should be cheap to be copied by value
type Registry struct {
	UsedConfigFile string

	Authority authorityConfiguration
	Issuance  issuanceConfiguration
	Coin      coinConfiguration
	Ledger    ledgerConfiguration
	Logger    loggerConfiguration
}

// Load makes an attempt to read and unmarshal any configs from flags, env and
// the ecash config file. A missing config file is not an error unless file
// names it explicitly.
//
// It uses the following precedence order. Each item takes precedence over the item below it:
//  - flag
//  - env (ECASH_<GROUP>_<KEY>)
//  - config
//  - default
func Load(file string, flags *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	// Make an attempt to find ecash.toml/ecash.json/ecash.yaml in any of the
	// provided paths below
	v.SetConfigName(configFileName)
	v.AddConfigPath(searchPath1)
	v.AddConfigPath(searchPath2)

	// confPath is overwritten by the one from command line
	if len(file) > 0 {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || len(file) > 0 {
			return errors.Wrap(err, "error reading config file")
		}
	}

	// Bind config key issuance.copies to ENV var ECASH_ISSUANCE_COPIES
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// e.g CLI argument `--logger.level=warn` will overwrite the value from
	// `[logger] level = "info"` in the loaded config file
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return errors.Wrap(err, "unable to bind pflags")
		}
	}

	reg := new(Registry)
	if err := v.Unmarshal(reg); err != nil {
		return errors.Wrap(err, "unable to decode into struct")
	}

	reg.UsedConfigFile = v.ConfigFileUsed()

	if err := reg.Validate(); err != nil {
		return err
	}

	r = reg
	return nil
}

// NewFlagSet returns the flags that can override config file settings. The
// settings that are needed to be passed frequently by CLI should be added here.
// Only flags explicitly set take precedence over the config file.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ecash", pflag.ContinueOnError)
	_ = fs.String("logger.level", DefaultLogLevel, "override logger.level settings in config file")
	_ = fs.String("logger.output", DefaultLogOutput, "specifies the log output")
	_ = fs.Int("authority.bits", DefaultKeyBits, "authority modulus size")
	_ = fs.String("authority.keyfile", "", "authority key file")
	_ = fs.Int("issuance.copies", DefaultCopies, "cut-and-choose batch size")
	_ = fs.String("ledger.driver", DefaultLedgerDriver, "redemption ledger backend")
	_ = fs.String("ledger.dir", DefaultLedgerDir, "redemption ledger directory")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("authority.bits", DefaultKeyBits)
	v.SetDefault("authority.keyfile", "")
	v.SetDefault("issuance.copies", DefaultCopies)
	v.SetDefault("coin.tag", DefaultCoinTag)
	v.SetDefault("coin.riscount", DefaultRISCount)
	v.SetDefault("coin.hash", DefaultHash)
	v.SetDefault("ledger.driver", DefaultLedgerDriver)
	v.SetDefault("ledger.dir", DefaultLedgerDir)
	v.SetDefault("ledger.filtercapacity", DefaultFilterCapacity)
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.output", DefaultLogOutput)
	v.SetDefault("logger.format", DefaultLogFormat)
}

// Validate rejects settings the ecash packages cannot run with.
func (r Registry) Validate() error {
	bits := r.Authority.Bits
	if bits < MinKeyBits || bits > MaxKeyBits || bits%KeyBitsStep != 0 {
		return errors.Errorf("authority.bits must be a multiple of %d in [%d, %d], got %d", KeyBitsStep, MinKeyBits, MaxKeyBits, bits)
	}

	if r.Issuance.Copies < MinCopies {
		return errors.Errorf("issuance.copies must be at least %d, got %d", MinCopies, r.Issuance.Copies)
	}

	if r.Coin.Tag == "" || strings.ContainsAny(r.Coin.Tag, "-,") {
		return errors.Errorf("coin.tag %q must be non-empty and contain neither '-' nor ','", r.Coin.Tag)
	}

	if r.Coin.RISCount < 1 {
		return errors.Errorf("coin.riscount must be positive, got %d", r.Coin.RISCount)
	}

	if !oneOf(r.Coin.Hash, SupportedHashes) {
		return errors.Errorf("coin.hash %q is not one of %v", r.Coin.Hash, SupportedHashes)
	}

	if !oneOf(r.Ledger.Driver, SupportedLedgerDrivers) {
		return errors.Errorf("ledger.driver %q is not one of %v", r.Ledger.Driver, SupportedLedgerDrivers)
	}

	if r.Logger.Format != "" && !oneOf(r.Logger.Format, []string{"text", "json"}) {
		return errors.Errorf("logger.format %q is not text or json", r.Logger.Format)
	}

	return nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// Get returns registry by value in order to avoid further modifications after
// initial configuration loading
func Get() Registry {
	return *r
}

// Mock should be used only in test packages. It could be useful when a unit
// test needs to be rerun with configs different from the default ones.
func Mock(m *Registry) {
	r = m
}

// Default returns a registry holding the default value of every setting.
func Default() Registry {
	return Registry{
		Authority: authorityConfiguration{Bits: DefaultKeyBits},
		Issuance:  issuanceConfiguration{Copies: DefaultCopies},
		Coin: coinConfiguration{
			Tag:      DefaultCoinTag,
			RISCount: DefaultRISCount,
			Hash:     DefaultHash,
		},
		Ledger: ledgerConfiguration{
			Driver:         DefaultLedgerDriver,
			Dir:            DefaultLedgerDir,
			FilterCapacity: DefaultFilterCapacity,
		},
		Logger: loggerConfiguration{
			Level:  DefaultLogLevel,
			Output: DefaultLogOutput,
			Format: DefaultLogFormat,
		},
	}
}

func init() {
	// By default Registry holds the defaults. In that way, consumers
	// (packages) can run their unit tests without loading anything
	d := Default()
	r = &d
}
