package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	DataDir      string        `yaml:"dataDir" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type NotificationConfig struct {
	ScanInterval     time.Duration `yaml:"scanInterval"`
	Lookahead        time.Duration `yaml:"lookahead"`
	DedupTolerance   time.Duration `yaml:"dedupTolerance"`
	SentRetention    time.Duration `yaml:"sentRetention"`
	DefaultEventTime string        `yaml:"defaultEventTime"`
	Icon             string        `yaml:"icon"`
	FeedSize         int           `yaml:"feedSize"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	// TTL bounds how long a cached rollup survives a date change the
	// version key does not capture.
	TTL time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName       string
	Debug         bool
	Path          string
	Timezone      string             `yaml:"timezone"`
	WebServer     Server             `yaml:"webServer"`
	Persistence   Persistence        `yaml:"persistence"`
	Logger        LoggerConfig       `yaml:"logger"`
	Cache         CacheConfig        `yaml:"cache"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
