package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/mitchellh/mapstructure"
)

const (
	FileName    = "config.json"
	EnvFileName = ".env"

	EnvTerm            = "SCHEDULEASE_TERM"
	EnvBaseURL         = "SCHEDULEASE_BASE_URL"
	EnvMaxCombinations = "SCHEDULEASE_MAX_COMBINATIONS"
)

type Config struct {
	Term            string                     `mapstructure:"term"`
	MaxCombinations uint64                     `mapstructure:"max_combinations"`
	Registration    Registration               `mapstructure:"registration"`
	Classifier      model.ClassifierConfig     `mapstructure:"classifier"`
	Linking         model.NumericLinkingConfig `mapstructure:"linking"`
	Calendar        Calendar                   `mapstructure:"calendar"`
}

type Registration struct {
	BaseURL      string        `mapstructure:"base_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	PageMaxSize  int           `mapstructure:"page_max_size"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	Retries      int           `mapstructure:"retries"`
	Trace        bool          `mapstructure:"trace"`
}

type Calendar struct {
	Weeks    int    `mapstructure:"weeks"`
	Location string `mapstructure:"location"` // IANA time zone of the campus
}

func Default() Config {
	return Config{
		Term:            "202540",
		MaxCombinations: model.DefaultMaxCombinations,
		Registration: Registration{
			BaseURL:      "https://registrationssb.ucr.edu",
			UserAgent:    registration.DefaultUserAgent,
			PageMaxSize:  50,
			RequestDelay: time.Second,
			Retries:      2,
		},
		Classifier: model.DefaultClassifierConfig(),
		Linking:    model.DefaultNumericLinkingConfig(),
		Calendar: Calendar{
			Weeks:    10,
			Location: "America/Los_Angeles",
		},
	}
}

// Load reads a JSON config file and layers it over Default. Keys absent from
// the file keep their default value.
func Load(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %v: %w", file, err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse %v: %w", file, err)
	}

	return Decode(inputJson)
}

// Decode layers an already parsed JSON document over Default.
func Decode(input map[string]any) (Config, error) {
	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Resolve loads the given file, or config.json next to the executable when
// file is empty, then applies environment overrides (see ApplyEnvironment).
// A missing default file yields Default.
func Resolve(file string) (Config, error) {
	config, err := resolveFile(file)
	if err != nil {
		return Config{}, err
	}
	return config.ApplyEnvironment(EnvFileName)
}

func resolveFile(file string) (Config, error) {
	if file != "" {
		return Load(file)
	}

	execPath, err := os.Executable()
	if err != nil {
		return Default(), nil
	}
	file = path.Join(path.Dir(execPath), FileName)
	if _, err := os.Stat(file); err != nil {
		return Default(), nil
	}
	return Load(file)
}

// ApplyEnvironment loads envFile (when it exists) into the process
// environment and overrides the term, base URL and combination limit from
// SCHEDULEASE_* variables. Variables already set take precedence over envFile.
func (config Config) ApplyEnvironment(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load %v: %w", envFile, err)
		}
	}

	if term, ok := os.LookupEnv(EnvTerm); ok && term != "" {
		config.Term = term
	}
	if baseURL, ok := os.LookupEnv(EnvBaseURL); ok && baseURL != "" {
		config.Registration.BaseURL = baseURL
	}
	if limit, ok := os.LookupEnv(EnvMaxCombinations); ok && limit != "" {
		value, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%v is not a valid number: %q", EnvMaxCombinations, limit)
		}
		config.MaxCombinations = value
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	if config.Registration.BaseURL == "" {
		return fmt.Errorf("registration.base_url must not be empty")
	}
	if config.Registration.PageMaxSize <= 0 {
		return fmt.Errorf("registration.page_max_size must be positive: %v", config.Registration.PageMaxSize)
	}
	if config.Calendar.Weeks <= 0 {
		return fmt.Errorf("calendar.weeks must be positive: %v", config.Calendar.Weeks)
	}
	if _, err := time.LoadLocation(config.Calendar.Location); err != nil {
		return fmt.Errorf("calendar.location is not a valid time zone: %w", err)
	}
	for _, band := range config.Classifier.Bands {
		if band.From > band.To {
			return fmt.Errorf("classifier band %v-%v is empty", band.From, band.To)
		}
		if band.Role != model.Lecture && band.Role != model.Lab && band.Role != model.Discussion {
			return fmt.Errorf("classifier band %v-%v has an unknown role: %q", band.From, band.To, band.Role)
		}
	}
	return nil
}

// ClientConfig turns the registration section into a client configuration.
func (config Config) ClientConfig() registration.ClientConfig {
	clientConfig := registration.ClientConfig{
		BaseURL:      config.Registration.BaseURL,
		UserAgent:    config.Registration.UserAgent,
		PageMaxSize:  config.Registration.PageMaxSize,
		RequestDelay: config.Registration.RequestDelay,
		Retries:      config.Registration.Retries,
	}
	if config.Registration.Trace {
		clientConfig.Logger = log.New(os.Stderr, "registration: ", log.LstdFlags)
	}
	return clientConfig
}

func (config Config) EnumeratorConfig() model.EnumeratorConfig {
	return model.EnumeratorConfig{
		Classifier:      model.NewClassifier(config.Classifier),
		Policy:          model.NewNumericLinkingPolicy(config.Linking),
		MaxCombinations: config.MaxCombinations,
	}
}
