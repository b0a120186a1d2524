package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const argsEnvPrefix = "STRAT"

var validate = validator.New()

// Args is the command line of one bot process.
type Args struct {
	Coin          string  `mapstructure:"coin" validate:"required,alphanum"`
	StableCoin    string  `mapstructure:"stable-coin" validate:"required,alphanum"`
	TimeFrame     string  `mapstructure:"time-frame" validate:"required"`
	DBFile        string  `mapstructure:"db-file" validate:"required"`
	TableName     string  `mapstructure:"table-name" validate:"required"`
	BuyingBudget  float64 `mapstructure:"buying-budget" validate:"gt=0"`
	WaitInMinutes int     `mapstructure:"wait-in-minutes" validate:"gte=1"`
	RunOnce       bool    `mapstructure:"run-once"`
	DryRun        bool    `mapstructure:"dry-run"`
}

// Symbol is COIN-STABLE in upper case.
func (a Args) Symbol() string {
	return strings.ToUpper(a.Coin) + "-" + strings.ToUpper(a.StableCoin)
}

func NewArgs() (Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs reads flags from argv; every flag can also come from STRAT_<FLAG> env,
// e.g. STRAT_STABLE_COIN. Flags win over env.
func ParseArgs(argv []string) (Args, error) {
	fs := pflag.NewFlagSet("strat_bot", pflag.ContinueOnError)
	fs.StringP("coin", "c", "", "Coin")
	fs.StringP("stable-coin", "m", "", "Stable coin")
	fs.StringP("time-frame", "t", "", "Candle time frame")
	fs.StringP("db-file", "f", "crypto_trade_diary.db", "Database file name, relative to $HOME")
	fs.String("table-name", "strat_trades", "Trade diary table")
	fs.Float64P("buying-budget", "b", 50, "Buying allocation budget in stable coin")
	fs.IntP("wait-in-minutes", "w", 5, "Wait time between runs")
	fs.BoolP("run-once", "r", false, "Run once")
	fs.BoolP("dry-run", "d", false, "Dry run: no orders are sent to the exchange")

	if err := fs.Parse(argv); err != nil {
		return Args{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(argsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Args{}, fmt.Errorf("bind flags: %w", err)
	}

	var args Args
	if err := v.Unmarshal(&args); err != nil {
		return Args{}, fmt.Errorf("read args: %w", err)
	}
	if err := args.Validate(); err != nil {
		return Args{}, err
	}
	return args, nil
}

func (a Args) Validate() error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, argErrorMessage(fe))
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func argErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "alphanum":
		return fmt.Sprintf("%s must be alphanumeric", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
