package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/core/roster"
)

// HolidayRule defines a holiday by recurrence rule or fixed date.
// Exactly one of RRule and Date should be set. A rule with no states
// and federal=false applies to nobody and is rejected at load time.
type HolidayRule struct {
	Name    string   `yaml:"name" validate:"required"`
	RRule   string   `yaml:"rrule,omitempty"`
	Date    string   `yaml:"date,omitempty"`
	Federal bool     `yaml:"federal,omitempty"`
	States  []string `yaml:"states,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Attempts is the generation retry budget
	Attempts int `yaml:"attempts,omitempty" validate:"omitempty,min=1"`

	// DefaultCoverage is the coverage minimum applied to every working
	// shift kind unless CoverageMinimums overrides it
	DefaultCoverage int `yaml:"defaultCoverage" validate:"min=0"`

	// CoverageMinimums overrides the default per shift kind
	CoverageMinimums map[string]int `yaml:"coverageMinimums,omitempty"`

	AllowHolidayStaffing bool `yaml:"allowHolidayStaffing,omitempty"`

	FloaterWindowDays int `yaml:"floaterWindowDays,omitempty" validate:"omitempty,min=1"`
	FloaterWindowMax  int `yaml:"floaterWindowMax,omitempty" validate:"omitempty,min=1"`

	Holidays []HolidayRule `yaml:"holidays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment, e.g. shiftroster_config.prod.yaml. The file is looked up
// in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("shiftroster_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the shift kinds named in
// coverage overrides, and the syntax of every holiday rule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for name, min := range cfg.CoverageMinimums {
		kind := model.ShiftKind(name)
		if !kind.IsWork() {
			return fmt.Errorf("coverageMinimums names unknown shift kind %q", name)
		}
		if min < 0 {
			return fmt.Errorf("coverageMinimums[%s] must not be negative", name)
		}
	}

	for i, rule := range cfg.Holidays {
		if (rule.RRule == "") == (rule.Date == "") {
			return fmt.Errorf("holidays[%d] (%s) must set exactly one of rrule and date", i, rule.Name)
		}
		if rule.RRule != "" {
			if _, err := rrule.StrToRRule(rule.RRule); err != nil {
				return fmt.Errorf("invalid rrule in holidays[%d] (%s): %w", i, rule.Name, err)
			}
		}
		if rule.Date != "" {
			if _, err := time.Parse(model.DateFormat, rule.Date); err != nil {
				return fmt.Errorf("invalid date in holidays[%d] (%s): %w", i, rule.Name, err)
			}
		}
		if !rule.Federal && len(rule.States) == 0 {
			return fmt.Errorf("holidays[%d] (%s) is neither federal nor state-scoped", i, rule.Name)
		}
	}

	return nil
}

// Policy builds the standing scheduling policy from the configuration
func (cfg *Config) Policy() roster.Policy {
	policy := roster.DefaultPolicy()

	for _, kind := range model.WeekdayWorkKinds {
		policy.CoverageMinimums[kind] = cfg.DefaultCoverage
	}
	for _, kind := range model.WeekendWorkKinds {
		policy.CoverageMinimums[kind] = cfg.DefaultCoverage
	}
	for name, min := range cfg.CoverageMinimums {
		policy.CoverageMinimums[model.ShiftKind(name)] = min
	}

	policy.AllowHolidayStaffing = cfg.AllowHolidayStaffing
	if cfg.Attempts > 0 {
		policy.Attempts = cfg.Attempts
	}
	if cfg.FloaterWindowDays > 0 {
		policy.FloaterWindowDays = cfg.FloaterWindowDays
	}
	if cfg.FloaterWindowMax > 0 {
		policy.FloaterWindowMax = cfg.FloaterWindowMax
	}

	return policy
}

// HolidaysFor expands the configured holiday rules into the concrete
// holiday dates falling inside the given month
func (cfg *Config) HolidaysFor(year int, month time.Month) ([]model.Holiday, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var holidays []model.Holiday
	for i, rule := range cfg.Holidays {
		if rule.Date != "" {
			date, err := time.Parse(model.DateFormat, rule.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date in holidays[%d] (%s): %w", i, rule.Name, err)
			}
			if !date.Before(monthStart) && !date.After(monthEnd) {
				holidays = append(holidays, model.Holiday{
					Name:    rule.Name,
					Date:    rule.Date,
					Federal: rule.Federal,
					States:  rule.States,
				})
			}
			continue
		}

		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in holidays[%d] (%s): %w", i, rule.Name, err)
		}
		// Anchor the rule well before the target month so yearly rules
		// generate occurrences regardless of when they were written
		r.DTStart(monthStart.AddDate(-1, 0, 0))

		for _, occurrence := range r.Between(monthStart, monthEnd, true) {
			holidays = append(holidays, model.Holiday{
				Name:    rule.Name,
				Date:    occurrence.Format(model.DateFormat),
				Federal: rule.Federal,
				States:  rule.States,
			})
		}
	}

	return holidays, nil
}

// findConfigFile searches for the named config file in the current
// directory and the user's home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
