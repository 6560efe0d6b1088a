package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/iwvelando/tax-calculator/internal/calculator"
	"github.com/iwvelando/tax-calculator/internal/config"
	"github.com/iwvelando/tax-calculator/internal/logging"
	"github.com/iwvelando/tax-calculator/pkg/constants"
	"github.com/iwvelando/tax-calculator/pkg/format"
	"github.com/iwvelando/tax-calculator/pkg/output"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
	"github.com/iwvelando/tax-calculator/pkg/validation"
	"go.uber.org/zap"
)

// loadConfiguration reads the config file, or standard input when path is
// "-". A missing file at the default location is not an error: built-in
// defaults apply.
func loadConfiguration(path string) (*config.Configuration, error) {
	if path == "-" {
		return config.LoadConfigurationFromReader(os.Stdin)
	}
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			conf := &config.Configuration{}
			conf.ApplyDefaults()
			return conf, nil
		}
	}
	return config.LoadConfiguration(path)
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file, or - to read it from stdin")
	amount := flag.String("amount", "", "amount to convert (net when adding, gross when removing)")
	rate := flag.String("rate", "", "tax rate in percent, e.g. 20")
	directionFlag := flag.String("direction", "", "conversion direction: add or remove")
	region := flag.String("region", "", "use the preset rate for this region instead of -rate")
	batch := flag.String("batch", "", "path to a CSV file of amount,rate[,direction] rows")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat, err := validation.ResolveOutputFormat(conf.Output.Format, *outputFormatFlag)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	direction := conf.DefaultDirection()
	if *directionFlag != "" {
		direction, err = taxmath.ParseDirection(*directionFlag)
		if err != nil {
			logger.Fatal("invalid direction",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	calc := calculator.New(logger)
	formatter := format.NewFormatter(conf.Output.Locale, conf.Output.CurrencySymbol)

	var requests []calculator.Request
	if *batch != "" {
		file, err := os.Open(*batch)
		if err != nil {
			logger.Fatal("failed to open batch file",
				zap.String("op", "main"),
				zap.String("path", *batch),
				zap.Error(err),
			)
		}
		requests, err = calculator.ReadRequests(file, direction)
		_ = file.Close()
		if err != nil {
			logger.Fatal("failed to read batch file",
				zap.String("op", "main"),
				zap.String("path", *batch),
				zap.Error(err),
			)
		}
	} else {
		amountText := *amount
		if amountText == "" {
			amountText = conf.Defaults.Amount
		}

		rateText := *rate
		if *region != "" {
			preset, ok := conf.PresetRate(*region)
			if !ok {
				logger.Fatal("unknown region",
					zap.String("op", "main"),
					zap.String("region", *region),
				)
			}
			rateText = strconv.FormatFloat(preset.Rate, 'f', -1, 64)
		}
		if rateText == "" {
			rateText = conf.Defaults.Rate
		}

		requests = []calculator.Request{{Amount: amountText, Rate: rateText, Direction: direction}}
	}

	outcomes := calc.CalculateBatch(requests)

	// Handle output. Requests without a result print nothing.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyBatch(os.Stdout, formatter, outcomes)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(os.Stdout, outcomes); err != nil {
			logger.Fatal("failed to write CSV output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
