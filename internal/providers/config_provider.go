package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"studytrack/internal/structures"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultScanInterval     = 5 * time.Minute
	defaultLookahead        = 60 * time.Minute
	defaultDedupTolerance   = 60 * time.Second
	defaultSentRetention    = 7 * 24 * time.Hour
	defaultEventTime        = "09:00"
	defaultNotificationIcon = "/favicon.ico"
	defaultFeedSize         = 50
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "STUDYTRACK_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "STUDYTRACK_SAVE_INTERVAL")
	viper.BindEnv("persistence.dataDir", "STUDYTRACK_DATA_DIR")
	viper.BindEnv("cache.enabled", "STUDYTRACK_CACHE_ENABLED")
	viper.BindEnv("timezone", "STUDYTRACK_TIMEZONE")

	viper.SetDefault("notifications.scanInterval", defaultScanInterval)
	viper.SetDefault("notifications.lookahead", defaultLookahead)
	viper.SetDefault("notifications.dedupTolerance", defaultDedupTolerance)
	viper.SetDefault("notifications.sentRetention", defaultSentRetention)
	viper.SetDefault("notifications.defaultEventTime", defaultEventTime)
	viper.SetDefault("notifications.icon", defaultNotificationIcon)
	viper.SetDefault("notifications.feedSize", defaultFeedSize)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	ApplyNotificationDefaults(&conf)
	conf.AppName = "StudyTrack"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// ApplyNotificationDefaults fills zero scheduler settings, so configs built
// in code behave like the ones read from disk.
func ApplyNotificationDefaults(conf *structures.Config) {
	n := &conf.Notifications
	if n.ScanInterval <= 0 {
		n.ScanInterval = defaultScanInterval
	}
	if n.Lookahead <= 0 {
		n.Lookahead = defaultLookahead
	}
	if n.DedupTolerance <= 0 {
		n.DedupTolerance = defaultDedupTolerance
	}
	if n.SentRetention <= 0 {
		n.SentRetention = defaultSentRetention
	}
	if n.DefaultEventTime == "" {
		n.DefaultEventTime = defaultEventTime
	}
	if n.Icon == "" {
		n.Icon = defaultNotificationIcon
	}
	if n.FeedSize <= 0 {
		n.FeedSize = defaultFeedSize
	}
}
